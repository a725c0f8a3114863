// Command pyblow generates an STL model of a thermoformed acrylic bubble:
// a rectangular sheet clamped at its edges and blown into a dome.
//
// Usage:
//
//	pyblow [-length 96] [-width 48] [-height 12] [-resolution 50] [-output bubble.stl]
//	pyblow -script bubbles.pyblow
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chazu/pyblow/pkg/export"
	"github.com/chazu/pyblow/pkg/sheet"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pyblow: ")

	def := sheet.Defaults()
	length := flag.Float64("length", def.Length, "sheet extent along x")
	width := flag.Float64("width", def.Width, "sheet extent along y")
	height := flag.Float64("height", def.Height, "bubble apex height")
	resolution := flag.Int("resolution", def.Resolution, "samples per side of the grid")
	output := flag.String("output", def.Output, "output file")
	format := flag.String("format", "", "output format: "+strings.Join(export.FormatNames(), ", ")+" (default: from -output)")
	script := flag.String("script", "", "read bubbles from a parameter script instead of the flags above")
	prev := flag.Bool("preview", false, "also write an SVG heat map next to each output")
	allowEmpty := flag.Bool("allow-empty", false, "write the file even if the mesh has no triangles")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pyblow [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	app := NewApp()
	app.AllowEmpty = *allowEmpty
	app.Preview = *prev

	params := []sheet.Params{{
		Length:     *length,
		Width:      *width,
		Height:     *height,
		Resolution: *resolution,
		Output:     *output,
		Format:     *format,
	}}
	if *script != "" {
		src, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("%v", err)
		}
		params, err = app.Evaluate(string(src))
		if err != nil {
			log.Fatalf("%s: %v", *script, err)
		}
		if len(params) == 0 {
			log.Printf("%s declares no bubbles", *script)
		}
	}

	if _, err := app.Run(params); err != nil {
		log.Fatalf("%v", err)
	}
}
