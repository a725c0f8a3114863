package sheet

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/pyblow/pkg/export"
	"github.com/chazu/pyblow/pkg/triangulate"
)

// ValidationSeverity indicates whether a finding blocks generation or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Field    string             // parameter with the problem
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Field   string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural checks: values that cannot produce a file
// at all. An empty slice means the parameters are usable.
func Validate(p Params) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateFinite(p)...)
	errs = append(errs, validateResolution(p)...)
	errs = append(errs, validateOutput(p)...)
	return errs
}

// ValidateAll runs the structural checks plus the geometric ones, which
// only warn. Degenerate and mirrored sheets are still generated.
func ValidateAll(p Params) ValidationResult {
	return ValidationResult{
		Errors:   Validate(p),
		Warnings: validateGeometry(p),
	}
}

// validateFinite rejects NaN and infinite dimensions.
func validateFinite(p Params) []ValidationError {
	var errs []ValidationError
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"length", p.Length},
		{"width", p.Width},
		{"height", p.Height},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			errs = append(errs, ValidationError{
				Field:    f.name,
				Message:  fmt.Sprintf("%v is not a finite number", f.v),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateResolution rejects grids whose vertex indices do not fit in a
// face.
func validateResolution(p Params) []ValidationError {
	if p.Resolution <= triangulate.MaxResolution {
		return nil
	}
	return []ValidationError{{
		Field:    "resolution",
		Message:  fmt.Sprintf("resolution %d exceeds the maximum of %d", p.Resolution, triangulate.MaxResolution),
		Severity: SeverityError,
	}}
}

// validateOutput checks the destination path and format.
func validateOutput(p Params) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(p.Output) == "" {
		errs = append(errs, ValidationError{
			Field:    "output",
			Message:  "output path is empty",
			Severity: SeverityError,
		})
	}
	if _, err := export.Resolve(p.Format, p.Output); err != nil {
		errs = append(errs, ValidationError{
			Field:    "format",
			Message:  err.Error(),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateGeometry flags parameters that are accepted but probably not
// what the caller meant.
func validateGeometry(p Params) []ValidationWarning {
	var warnings []ValidationWarning

	if p.Resolution < 2 {
		warnings = append(warnings, ValidationWarning{
			Field:   "resolution",
			Message: fmt.Sprintf("resolution %d is below 2, the mesh will have no triangles", p.Resolution),
		})
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"length", p.Length},
		{"width", p.Width},
	} {
		switch {
		case f.v < 0:
			warnings = append(warnings, ValidationWarning{
				Field:   f.name,
				Message: fmt.Sprintf("%g is negative, the grid is mirrored and triangle winding flips", f.v),
			})
		case f.v == 0:
			warnings = append(warnings, ValidationWarning{
				Field:   f.name,
				Message: "extent is zero, the sheet collapses to a line and stays flat",
			})
		}
	}

	if p.Height < 0 {
		warnings = append(warnings, ValidationWarning{
			Field:   "height",
			Message: fmt.Sprintf("%g is negative, the bubble is blown downwards", p.Height),
		})
	}

	return warnings
}
