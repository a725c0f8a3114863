package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/pyblow/pkg/engine"
	"github.com/chazu/pyblow/pkg/export"
	"github.com/chazu/pyblow/pkg/preview"
	"github.com/chazu/pyblow/pkg/sheet"
	"github.com/chazu/pyblow/pkg/tessellate"
	"github.com/samber/lo"
)

// previewCell is the edge length, in SVG units, of one preview sample.
const previewCell = 8

// App runs the generation pipeline. main is a thin flag layer over it.
type App struct {
	engine *engine.Engine

	// AllowEmpty writes a file even when the mesh has no triangles.
	AllowEmpty bool
	// Preview writes an SVG heat map next to every output file.
	Preview bool
}

// Report summarizes one generated file.
type Report struct {
	Params    sheet.Params
	Format    export.Format
	Vertices  int
	Triangles int
	Bytes     int64
	Warnings  []sheet.ValidationWarning
	Preview   string // path of the SVG, empty if none was written
}

// NewApp creates an App with a fresh script engine.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// Evaluate runs a parameter script and returns the bubbles it declares.
// Script errors are joined into one error carrying their line numbers.
func (a *App) Evaluate(source string) ([]sheet.Params, error) {
	params, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("Evaluate fatal error: %v", err)
		return nil, fmt.Errorf("script: %w", err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("script: %w", errors.Join(lo.Map(evalErrs, func(e engine.EvalError, _ int) error {
			return e
		})...))
	}
	return params, nil
}

// Generate validates p, builds the bubble mesh and writes it to p.Output.
func (a *App) Generate(p sheet.Params) (*Report, error) {
	// Step 1: Validate. Warnings are reported, errors stop here.
	vr := sheet.ValidateAll(p)
	for _, w := range vr.Warnings {
		log.Printf("warning: %s", w)
	}
	if !vr.OK() {
		return nil, fmt.Errorf("invalid parameters: %w", errors.Join(lo.Map(vr.Errors, func(e sheet.ValidationError, _ int) error {
			return e
		})...))
	}
	format, err := export.Resolve(p.Format, p.Output)
	if err != nil {
		return nil, err
	}

	// Step 2: Sample and triangulate.
	res := tessellate.Tessellate(p)
	if !a.AllowEmpty {
		if err := tessellate.RequireFaces(res.Mesh); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Output, err)
		}
	}

	// Step 3: Encode to the output file.
	n, err := writeFile(p.Output, func(f *os.File) error {
		return export.Encode(f, res.Mesh, format)
	})
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Params:    p,
		Format:    format,
		Vertices:  res.Mesh.VertexCount(),
		Triangles: res.Mesh.TriangleCount(),
		Bytes:     n,
		Warnings:  vr.Warnings,
	}

	// Step 4: Optional plan-view preview.
	if a.Preview && res.Grid.Len() > 0 {
		path := PreviewPath(p.Output)
		if _, err := writeFile(path, func(f *os.File) error {
			return preview.WriteSVG(f, res.Grid, previewCell)
		}); err != nil {
			return nil, err
		}
		rep.Preview = path
	}

	return rep, nil
}

// Run generates every bubble in order and stops at the first failure.
func (a *App) Run(params []sheet.Params) ([]*Report, error) {
	reports := make([]*Report, 0, len(params))
	for _, p := range params {
		rep, err := a.Generate(p)
		if err != nil {
			return reports, err
		}
		log.Printf("wrote %s: %s, %d triangles, %d bytes (%s)", p.Output, p, rep.Triangles, rep.Bytes, rep.Format)
		reports = append(reports, rep)
	}
	return reports, nil
}

// PreviewPath is where the preview for an output file goes: the same
// path with an .svg extension.
func PreviewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".svg"
}

// writeFile creates path, hands it to write and returns the final size.
// The file is removed if anything after creating it fails.
func writeFile(path string, write func(*os.File) error) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := write(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return info.Size(), nil
}
