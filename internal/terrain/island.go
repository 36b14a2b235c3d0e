package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Island generates a deterministic archipelago from seeded simplex noise:
// deep water far out, islands and shoals inside Radius. Same seed, same
// coastline.
type Island struct {
	noise    opensimplex.Noise
	radius   float64
	deep     float64
	peak     float64
	noiseFrq float64
}

// NewIsland builds an island height field centered on the origin. radius
// bounds the archipelago, deep is the open-water depth outside it and peak
// the tallest land height inside it.
func NewIsland(seed int64, radius, deep, peak float64) *Island {
	return &Island{
		noise:    opensimplex.NewNormalized(seed),
		radius:   radius,
		deep:     deep,
		peak:     peak,
		noiseFrq: 2.5 / radius,
	}
}

func (g *Island) HeightAt(x, y float64) float64 {
	r := math.Hypot(x, y) / g.radius
	if r >= 1.2 {
		return -g.deep
	}

	n := octaveNoise(g.noise, x*g.noiseFrq, y*g.noiseFrq, 4, 1, 0.5)

	// Radial falloff keeps the rim under water so the archipelago never
	// touches the domain margin.
	falloff := 1 - r*r
	if falloff < 0 {
		falloff = 0
	}
	elevation := (n*2 - 1) * falloff

	if elevation <= 0 {
		return -g.deep
	}
	h := elevation*(g.peak+g.deep) - g.deep
	if h > g.peak {
		h = g.peak
	}
	return h
}

func (g *Island) CoastBounds() (min, max mgl64.Vec2) {
	return mgl64.Vec2{-g.radius, -g.radius}, mgl64.Vec2{g.radius, g.radius}
}

// octaveNoise layers normalized simplex noise; result stays in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}
