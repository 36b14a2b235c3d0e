// Package render writes diagnostic PNGs of solver fields and meshes. These
// are developer tooling; the shipping water shader consumes the mesh
// directly.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	hsluv "github.com/hsluv/hsluv-go"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"

	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
)

// HeatmapImage rasterizes one per-cell field, one pixel per grid cell, on an
// hsluv ramp from blue (low) to red (high). Land cells are dark gray and
// non-finite values black. A min/max legend is drawn in the corner.
func HeatmapImage(g *solver.Grid, values []float64, label string) *image.RGBA {
	lo, hi := finiteRange(values)

	img := image.NewRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			// Flip vertically: world y grows up, image y grows down.
			py := g.Rows - 1 - row
			if g.Status[idx] == solver.StatusLand {
				img.Set(col, py, color.RGBA{40, 40, 40, 255})
				continue
			}
			v := values[idx]
			if math.IsInf(v, 0) || math.IsNaN(v) {
				img.Set(col, py, color.Black)
				continue
			}
			t := 0.0
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			// 250 (blue) down to 10 (red), perceptually even.
			r, gc, b := hsluv.HsluvToRGB(250-240*t, 90, 30+45*t)
			img.Set(col, py, color.RGBA{uint8(r * 255), uint8(gc * 255), uint8(b * 255), 255})
		}
	}

	drawLabel(img, 2, 10, fmt.Sprintf("%s  min %.3g  max %.3g", label, lo, hi))
	return img
}

// WriteHeatmap renders a field straight to a PNG file.
func WriteHeatmap(path string, g *solver.Grid, values []float64, label string) error {
	return writePNG(path, HeatmapImage(g, values, label))
}

// finiteRange scans for min and max over the finite entries; falls back to
// gonum reductions when everything is finite.
func finiteRange(values []float64) (lo, hi float64) {
	finite := values[:0:0]
	allFinite := true
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			allFinite = false
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return 0, 0
	}
	if allFinite {
		return floats.Min(values), floats.Max(values)
	}
	return floats.Min(finite), floats.Max(finite)
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
