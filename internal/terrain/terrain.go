package terrain

import "github.com/go-gl/mathgl/mgl64"

// HeightSampler exposes a terrain height field to the wavefront solver.
// Heights above zero are dry land; depths come out of tide minus height.
// Samplers must be safe for repeated queries and deterministic for a given
// construction.
type HeightSampler interface {
	// HeightAt returns the signed terrain height at a world position.
	HeightAt(x, y float64) float64
}

// Bounded is implemented by samplers that know the extent of their coastline,
// letting the solver size its domain instead of falling back to the default
// half-extent.
type Bounded interface {
	// CoastBounds returns the bounding box of all terrain that can break the
	// water surface.
	CoastBounds() (min, max mgl64.Vec2)
}

// Flat is open water of constant depth, the baseline for solver tests.
type Flat struct {
	Depth float64
}

func (f Flat) HeightAt(x, y float64) float64 {
	return -f.Depth
}
