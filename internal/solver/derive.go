package solver

import (
	"math"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// deriveProperties turns the travel-time field into the per-cell quantities
// the surface shader consumes: local propagation direction (gradient of T),
// phase offset against the ideal planar wave, and an amplitude factor
// combining shoaling, ray convergence and diffraction attenuation. Cells
// never reached by either pass get zeros across the board.
func (g *Grid) deriveProperties(cfg config.Solver) {
	omega := g.Source.AngularFrequency()
	convScale := cfg.ConvergenceGain * g.Source.DeepSpeed() * g.Source.Wavelength
	h := g.Spacing

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			if !g.Reached(idx) {
				g.Amplitude[idx] = 0
				g.DirectionOffset[idx] = 0
				g.PhaseOffset[idx] = 0
				continue
			}
			t := g.TravelTime[idx]

			gx, lapX := g.axisDiffs(idx, col > 0, col < g.Cols-1, 1)
			gy, lapY := g.axisDiffs(idx, row > 0, row < g.Rows-1, g.Cols)

			if gx != 0 || gy != 0 {
				g.DirectionOffset[idx] = wave.NormalizeAngle(math.Atan2(gy, gx) - g.Source.Direction)
			}

			g.PhaseOffset[idx] = wave.NormalizeAngle(omega * (t - g.planar[idx]))

			lap := (lapX + lapY) / (h * h)
			conv := 1 - convScale*lap
			if conv < 0.1 {
				conv = 0.1
			} else if conv > 2.0 {
				conv = 2.0
			}
			g.Amplitude[idx] = g.Source.Shoaling(g.Depth[idx]) * conv * g.DiffractionAmp[idx]
		}
	}
}

// axisDiffs returns the travel-time gradient component along one axis
// (central difference where both neighbors are reached, one-sided at domain
// and land boundaries) and that axis' second-difference contribution to the
// Laplacian (zero unless both neighbors are reached).
func (g *Grid) axisDiffs(idx int, hasLo, hasHi bool, stride int) (grad, secondDiff float64) {
	t := g.TravelTime[idx]
	lo := hasLo && g.Reached(idx-stride)
	hi := hasHi && g.Reached(idx+stride)
	switch {
	case lo && hi:
		tl := g.TravelTime[idx-stride]
		th := g.TravelTime[idx+stride]
		grad = (th - tl) / (2 * g.Spacing)
		secondDiff = tl + th - 2*t
	case lo:
		grad = (t - g.TravelTime[idx-stride]) / g.Spacing
	case hi:
		grad = (g.TravelTime[idx+stride] - t) / g.Spacing
	}
	return grad, secondDiff
}
