// Package preview renders a top-down heat map of a sampled height field as
// SVG, for a quick look at a bubble before it goes to the printer.
package preview

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/chazu/pyblow/pkg/heightfield"
	"github.com/samber/lo"
)

// ErrEmptyGrid is returned when there is nothing to draw.
var ErrEmptyGrid = errors.New("preview: empty grid")

// ramp is a coarse viridis, low to high.
var ramp = [][3]float64{
	{68, 1, 84},
	{59, 82, 139},
	{33, 145, 140},
	{94, 201, 98},
	{253, 231, 37},
}

// Color maps t in [0, 1] onto the ramp. Values outside are clamped and
// NaN maps to the low end.
func Color(t float64) (r, g, b int) {
	if !(t > 0) {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	f := t * float64(len(ramp)-1)
	k := int(f)
	if k >= len(ramp)-1 {
		c := ramp[len(ramp)-1]
		return int(c[0]), int(c[1]), int(c[2])
	}
	frac := f - float64(k)
	from, to := ramp[k], ramp[k+1]
	mix := func(c int) int {
		return int(math.Round(from[c] + (to[c]-from[c])*frac))
	}
	return mix(0), mix(1), mix(2)
}

// WriteSVG draws one cell x cell square per grid sample, colored by its
// height relative to the grid's minimum and maximum. Row 0 is drawn at the
// bottom so +y points up. Write failures on w are returned.
func WriteSVG(w io.Writer, g *heightfield.Grid, cell int) error {
	if g == nil || g.Len() == 0 {
		return ErrEmptyGrid
	}
	if cell < 1 {
		return fmt.Errorf("preview: cell size %d, want at least 1", cell)
	}

	zs := g.Heights()
	zmin, zmax := lo.Min(zs), lo.Max(zs)
	span := zmax - zmin

	r := g.Resolution
	// svgo drops write errors; bufio keeps the first one for Flush.
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(r*cell, r*cell)
	for i := 0; i < r; i++ {
		y := (r - 1 - i) * cell
		for j := 0; j < r; j++ {
			t := 0.0
			if span > 0 {
				t = (g.At(i, j).Z - zmin) / span
			}
			cr, cg, cb := Color(t)
			canvas.Rect(j*cell, y, cell, cell, canvas.RGB(cr, cg, cb))
		}
	}
	canvas.End()

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("preview: write: %w", err)
	}
	return nil
}
