package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bar is open water with a shallow ridge crossing the domain along the y
// axis, a gaussian bump in x. Waves shoal on its upwave slope.
type Bar struct {
	Depth      float64 // open-water depth away from the ridge
	CrestX     float64 // ridge center line
	CrestDepth float64 // water left over the ridge crest
	HalfWidth  float64 // gaussian sigma of the ridge profile
}

func (b Bar) HeightAt(x, y float64) float64 {
	dx := (x - b.CrestX) / b.HalfWidth
	rise := (b.Depth - b.CrestDepth) * math.Exp(-0.5*dx*dx)
	return -b.Depth + rise
}

// Wall is open water with a rectangular land mass, optionally pierced by a
// gap, used to study shadowing and diffraction behind an obstacle.
type Wall struct {
	Depth  float64 // open-water depth
	X0, X1 float64 // wall extent along x
	Y0, Y1 float64 // wall extent along y
	GapY0  float64 // optional channel through the wall; zero-size means solid
	GapY1  float64
}

func (w Wall) HeightAt(x, y float64) float64 {
	if x >= w.X0 && x <= w.X1 && y >= w.Y0 && y <= w.Y1 {
		if w.GapY1 > w.GapY0 && y >= w.GapY0 && y <= w.GapY1 {
			return -w.Depth
		}
		return 5
	}
	return -w.Depth
}

func (w Wall) CoastBounds() (min, max mgl64.Vec2) {
	return mgl64.Vec2{w.X0, w.Y0}, mgl64.Vec2{w.X1, w.Y1}
}
