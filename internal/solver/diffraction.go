package solver

import (
	"math"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
)

// solveDiffraction runs the secondary fast-marching pass that bleeds wave
// energy into shadow zones. After the primary sweep any Known cell still
// bordering Far water is a shadow-boundary cell; a fresh status copy keeps
// all primary results as immovable boundary values and the same stencil
// propagates travel time onward from there. Each shadow cell gets the
// cylindrical-spreading multiplier min(1, sqrt(lambda / 2*pi*r)), where r is
// the travel-time delta to its boundary source times the local speed, floored
// at one cell. The exact form of that estimate is load-bearing for the look
// of the water and is kept as-is even though it is only a heuristic.
// Returns the number of shadow cells reached.
func (g *Grid) solveDiffraction(cfg config.Solver) int {
	n := len(g.Status)
	status := make([]CellStatus, n)
	copy(status, g.Status)

	// srcT carries the travel time of the boundary cell each shadow cell was
	// ultimately reached from, inherited through the upwind neighbor.
	srcT := make([]float64, n)
	hasShadow := false
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			if g.Status[idx] != StatusKnown {
				continue
			}
			g.DiffractionAmp[idx] = 1
			srcT[idx] = g.TravelTime[idx]
			if hasShadow {
				continue
			}
			for _, d := range neighborOffsets {
				nc, nr := col+d[0], row+d[1]
				if nc < 0 || nc >= g.Cols || nr < 0 || nr >= g.Rows {
					continue
				}
				if status[g.Index(nc, nr)] == StatusFar {
					hasShadow = true
					break
				}
			}
		}
	}
	if !hasShadow {
		g.Status = status
		return 0
	}

	reached := g.propagate(status, g.TravelTime, cfg.MaxIterations, func(idx int) bool {
		col := idx % g.Cols
		row := idx / g.Cols
		upwind := math.Inf(1)
		for _, d := range neighborOffsets {
			nc, nr := col+d[0], row+d[1]
			if nc < 0 || nc >= g.Cols || nr < 0 || nr >= g.Rows {
				continue
			}
			nidx := g.Index(nc, nr)
			if status[nidx] == StatusKnown && g.TravelTime[nidx] < upwind {
				upwind = g.TravelTime[nidx]
				srcT[idx] = srcT[nidx]
			}
		}

		r := (g.TravelTime[idx] - srcT[idx]) * g.Speed[idx]
		if r < g.Spacing {
			r = g.Spacing
		}
		amp := math.Sqrt(g.Source.Wavelength / (2 * math.Pi * r))
		if amp > 1 {
			amp = 1
		}
		g.DiffractionAmp[idx] = amp

		// Stall cutoff: deep-shadow cells keep their value but stop feeding
		// the front.
		return amp >= cfg.MinDiffractionAmp
	})

	g.Status = status
	return reached
}
