package wave

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Gravity is the gravitational acceleration used by the dispersion relation,
// in length units per second squared.
const Gravity = 9.81

// Source describes one directional wave train.
type Source struct {
	Wavelength float64 // crest-to-crest distance, > 0
	Direction  float64 // propagation direction in radians, 0 = +x axis
}

// Wavenumber returns k = 2*pi / wavelength.
func (s Source) Wavenumber() float64 {
	return 2 * math.Pi / s.Wavelength
}

// DeepSpeed returns the deep-water phase speed sqrt(g*lambda / 2*pi).
func (s Source) DeepSpeed() float64 {
	return math.Sqrt(Gravity * s.Wavelength / (2 * math.Pi))
}

// Period returns the wave period implied by the deep-water speed.
func (s Source) Period() float64 {
	return s.Wavelength / s.DeepSpeed()
}

// AngularFrequency returns omega = 2*pi / period.
func (s Source) AngularFrequency() float64 {
	return 2 * math.Pi / s.Period()
}

// DirectionVec returns the unit propagation direction.
func (s Source) DirectionVec() mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(s.Direction), math.Sin(s.Direction)}
}

// PhaseSpeed returns the local phase speed at the given water depth using the
// finite-depth dispersion relation c = sqrt(g*lambda/2pi * tanh(k*depth)).
// Zero or negative depth means land: speed 0.
func (s Source) PhaseSpeed(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return s.DeepSpeed() * math.Sqrt(math.Tanh(s.Wavenumber()*depth))
}

// Shoaling returns the amplitude factor for terrain proximity: a Green's-law
// gain as the water shallows, tapered back to zero near the surf line so
// breaking waves do not blow up the surface mesh.
func (s Source) Shoaling(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	deepRef := s.Wavelength / 2
	if depth >= deepRef {
		return 1
	}
	gain := math.Pow(deepRef/depth, 0.25)
	if gain > 1.6 {
		gain = 1.6
	}
	breakDepth := 0.05 * s.Wavelength
	if depth < breakDepth {
		t := depth / breakDepth
		gain *= t * t * (3 - 2*t)
	}
	return gain
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
