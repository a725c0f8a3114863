package sheet

import (
	"math"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	if p.Length != 96 || p.Width != 48 || p.Height != 12 || p.Resolution != 50 {
		t.Errorf("Defaults() = %+v", p)
	}
	if p.Output != "bubble.stl" {
		t.Errorf("Defaults().Output = %q", p.Output)
	}
	if r := ValidateAll(p); !r.OK() || len(r.Warnings) != 0 {
		t.Errorf("defaults should validate cleanly, got %+v", r)
	}
}

func TestParamsString(t *testing.T) {
	got := Defaults().String()
	want := `96" x 48" x 12" high @ 50x50`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// hasWarning returns true if warnings contains a finding on field.
func hasWarning(ws []ValidationWarning, field string) bool {
	for _, w := range ws {
		if w.Field == field {
			return true
		}
	}
	return false
}

// hasError returns true if errs contains an error-severity finding on field
// whose message contains substr.
func hasError(errs []ValidationError, field, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
		substr string
	}{
		{"nan length", func(p *Params) { p.Length = math.NaN() }, "length", "finite"},
		{"inf width", func(p *Params) { p.Width = math.Inf(1) }, "width", "finite"},
		{"-inf height", func(p *Params) { p.Height = math.Inf(-1) }, "height", "finite"},
		{"empty output", func(p *Params) { p.Output = "  " }, "output", "empty"},
		{"unknown format", func(p *Params) { p.Format = "obj" }, "format", "unknown format"},
		{"resolution too large", func(p *Params) { p.Resolution = 1 << 16 }, "resolution", "exceeds the maximum of 65535"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.mutate(&p)
			errs := Validate(p)
			if !hasError(errs, tt.field, tt.substr) {
				t.Errorf("Validate() = %v, want error on %s containing %q", errs, tt.field, tt.substr)
			}
		})
	}
}

func TestMaxResolutionIsValid(t *testing.T) {
	p := Defaults()
	p.Resolution = 65535
	if errs := Validate(p); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors at the ceiling", errs)
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"resolution one", func(p *Params) { p.Resolution = 1 }, "resolution"},
		{"resolution negative", func(p *Params) { p.Resolution = -2 }, "resolution"},
		{"negative length", func(p *Params) { p.Length = -96 }, "length"},
		{"negative width", func(p *Params) { p.Width = -1 }, "width"},
		{"zero width", func(p *Params) { p.Width = 0 }, "width"},
		{"negative height", func(p *Params) { p.Height = -3 }, "height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.mutate(&p)
			r := ValidateAll(p)
			if !r.OK() {
				t.Fatalf("geometric findings must not block: %v", r.Errors)
			}
			if !hasWarning(r.Warnings, tt.field) {
				t.Errorf("warnings = %v, want one on %s", r.Warnings, tt.field)
			}
		})
	}
}

func TestZeroHeightIsClean(t *testing.T) {
	p := Defaults()
	p.Height = 0
	if r := ValidateAll(p); !r.OK() || len(r.Warnings) != 0 {
		t.Errorf("flat sheet should validate cleanly, got %+v", r)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "output", Message: "output path is empty", Severity: SeverityError}
	if got := e.Error(); got != "[error] output: output path is empty" {
		t.Errorf("Error() = %q", got)
	}
	if got := ValidationSeverity(7).String(); got != "ValidationSeverity(7)" {
		t.Errorf("String() = %q", got)
	}
}
