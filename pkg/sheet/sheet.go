// Package sheet describes the acrylic sheet being blown: its extents, the
// target bubble height, the sampling resolution and where the result goes.
package sheet

import "fmt"

// Defaults for a 4' x 8' sheet blown to a one-foot dome, in inches.
const (
	DefaultLength     = 96.0
	DefaultWidth      = 48.0
	DefaultHeight     = 12.0
	DefaultResolution = 50
	DefaultOutput     = "bubble.stl"
)

// Params is one bubble to generate. Units are whatever the caller uses
// consistently; the defaults are inches.
type Params struct {
	Length     float64 `json:"length"`           // extent along x
	Width      float64 `json:"width"`            // extent along y
	Height     float64 `json:"height"`           // apex height
	Resolution int     `json:"resolution"`       // samples per side
	Output     string  `json:"output"`           // destination path
	Format     string  `json:"format,omitempty"` // "" = infer from Output
}

// Defaults returns the parameters used when nothing is specified.
func Defaults() Params {
	return Params{
		Length:     DefaultLength,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Resolution: DefaultResolution,
		Output:     DefaultOutput,
	}
}

// String renders the sheet the way progress messages print it.
func (p Params) String() string {
	return fmt.Sprintf("%g\" x %g\" x %g\" high @ %dx%d", p.Length, p.Width, p.Height, p.Resolution, p.Resolution)
}
