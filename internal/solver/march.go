package solver

import (
	"math"

	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// march.go holds the single fast-marching sweep used by both the primary
// solve and the diffraction pass: seed cells are already StatusKnown in the
// status slice, everything else propagates outward in travel-time order.

// neighborOffsets enumerates the 4-connected stencil as (dcol, drow).
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// propagate drains a fast-marching front. status and times are mutated in
// place; cells already StatusKnown act as immovable boundary values. onKnown,
// if non-nil, runs as each cell is finalized and may return false to stop
// that cell from expanding the front any further. Returns the number of cells
// finalized by the sweep.
func (g *Grid) propagate(status []CellStatus, times []float64, maxIter int, onKnown func(idx int) bool) int {
	heap := newIndexHeap(times)

	// Frontier: every Far water neighbor of a seed gets a tentative value.
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			if status[idx] != StatusKnown {
				continue
			}
			for _, d := range neighborOffsets {
				nc, nr := col+d[0], row+d[1]
				if nc < 0 || nc >= g.Cols || nr < 0 || nr >= g.Rows {
					continue
				}
				nidx := g.Index(nc, nr)
				if status[nidx] != StatusFar {
					continue
				}
				t := g.tentative(status, times, nc, nr)
				if t < times[nidx] {
					times[nidx] = t
				}
				if !math.IsInf(times[nidx], 1) {
					status[nidx] = StatusTrial
					heap.Push(nidx)
				}
			}
		}
	}

	if maxIter <= 0 {
		maxIter = g.Cols * g.Rows
	}

	finalized := 0
	for heap.Len() > 0 && finalized < maxIter {
		idx := heap.Pop()
		status[idx] = StatusKnown
		finalized++

		expand := true
		if onKnown != nil {
			expand = onKnown(idx)
		}
		if !expand {
			continue
		}

		col := idx % g.Cols
		row := idx / g.Cols
		for _, d := range neighborOffsets {
			nc, nr := col+d[0], row+d[1]
			if nc < 0 || nc >= g.Cols || nr < 0 || nr >= g.Rows {
				continue
			}
			nidx := g.Index(nc, nr)
			if status[nidx] == StatusKnown || status[nidx] == StatusLand {
				continue
			}
			t := g.tentative(status, times, nc, nr)
			if t >= times[nidx] {
				continue
			}
			times[nidx] = t
			if status[nidx] == StatusTrial {
				heap.Fix(nidx)
			} else {
				status[nidx] = StatusTrial
				heap.Push(nidx)
			}
		}
	}
	return finalized
}

// turnOffset estimates how far the front has turned at a freshly finalized
// cell: the direction of the travel-time gradient across its Known neighbors,
// relative to the base wave direction. Returns 0 when too few neighbors are
// finalized to form a gradient.
func (g *Grid) turnOffset(status []CellStatus, times []float64, idx int) float64 {
	col := idx % g.Cols
	row := idx / g.Cols

	axis := func(loIdx, hiIdx int, hasLo, hasHi bool) float64 {
		lo := hasLo && status[loIdx] == StatusKnown
		hi := hasHi && status[hiIdx] == StatusKnown
		switch {
		case lo && hi:
			return (times[hiIdx] - times[loIdx]) / (2 * g.Spacing)
		case lo:
			return (times[idx] - times[loIdx]) / g.Spacing
		case hi:
			return (times[hiIdx] - times[idx]) / g.Spacing
		}
		return 0
	}
	gx := axis(idx-1, idx+1, col > 0, col < g.Cols-1)
	gy := axis(idx-g.Cols, idx+g.Cols, row > 0, row < g.Rows-1)
	if gx == 0 && gy == 0 {
		return 0
	}
	return math.Abs(wave.NormalizeAngle(math.Atan2(gy, gx) - g.Source.Direction))
}

// tentative evaluates the upwind finite-difference stencil for |grad T| = 1/c
// at one cell. Each axis contributes the smaller Known travel time of its two
// neighbors, or nothing at all. With both axes the quadratic
// 2T^2 - 2(tx+ty)T + (tx^2 + ty^2 - (h*s)^2) = 0 is solved for the larger
// root; a negative discriminant or a root violating causality falls back to
// the one-dimensional update min(tx, ty) + h*s.
func (g *Grid) tentative(status []CellStatus, times []float64, col, row int) float64 {
	idx := g.Index(col, row)
	speed := g.Speed[idx]
	if speed <= 0 {
		return math.Inf(1)
	}
	hs := g.Spacing / speed

	txMin := math.Inf(1)
	if col > 0 {
		if n := g.Index(col-1, row); status[n] == StatusKnown && times[n] < txMin {
			txMin = times[n]
		}
	}
	if col < g.Cols-1 {
		if n := g.Index(col+1, row); status[n] == StatusKnown && times[n] < txMin {
			txMin = times[n]
		}
	}
	tyMin := math.Inf(1)
	if row > 0 {
		if n := g.Index(col, row-1); status[n] == StatusKnown && times[n] < tyMin {
			tyMin = times[n]
		}
	}
	if row < g.Rows-1 {
		if n := g.Index(col, row+1); status[n] == StatusKnown && times[n] < tyMin {
			tyMin = times[n]
		}
	}

	xOK := !math.IsInf(txMin, 1)
	yOK := !math.IsInf(tyMin, 1)
	switch {
	case xOK && yOK:
		b := -2 * (txMin + tyMin)
		c := txMin*txMin + tyMin*tyMin - hs*hs
		disc := b*b - 8*c
		if disc >= 0 {
			t := (-b + math.Sqrt(disc)) / 4
			if t >= math.Max(txMin, tyMin) {
				return t
			}
		}
		return math.Min(txMin, tyMin) + hs
	case xOK:
		return txMin + hs
	case yOK:
		return tyMin + hs
	default:
		return math.Inf(1)
	}
}
