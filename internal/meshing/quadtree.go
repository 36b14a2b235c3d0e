package meshing

import (
	"math"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
)

// The quadtree is implicit: one level value per base grid cell, where a cell
// at level L belongs to an axis-aligned block of 2^L x 2^L base cells. Merge
// decisions compare the true per-point fields against bilinear interpolation
// of the block corners, each channel scaled to a comparable range (amplitude
// as-is, direction over 0.5 rad, phase over pi).

const (
	directionErrScale = 0.5
	phaseErrScale     = math.Pi
)

// simplify assigns a quadtree level to every base cell: bottom-up greedy
// merge, then a 2:1 grading fixpoint that splits any block more than one
// level coarser than an axis neighbor.
func simplify(g *solver.Grid, cfg config.Solver) []uint8 {
	cellCols := g.Cols - 1
	cellRows := g.Rows - 1
	levels := make([]uint8, cellCols*cellRows)

	for level := 1; level <= cfg.MaxQuadLevel; level++ {
		size := 1 << level
		child := uint8(level - 1)
		for r0 := 0; r0+size <= cellRows; r0 += size {
			for c0 := 0; c0+size <= cellCols; c0 += size {
				if !uniformLevel(levels, cellCols, c0, r0, size, child) {
					continue
				}
				if blockError(g, c0, r0, size) > cfg.SimplifyTolerance {
					continue
				}
				setLevel(levels, cellCols, c0, r0, size, uint8(level))
			}
		}
	}

	gradeLevels(levels, cellCols, cellRows)
	return levels
}

func uniformLevel(levels []uint8, cellCols, c0, r0, size int, want uint8) bool {
	for r := r0; r < r0+size; r++ {
		for c := c0; c < c0+size; c++ {
			if levels[r*cellCols+c] != want {
				return false
			}
		}
	}
	return true
}

func setLevel(levels []uint8, cellCols, c0, r0, size int, level uint8) {
	for r := r0; r < r0+size; r++ {
		for c := c0; c < c0+size; c++ {
			levels[r*cellCols+c] = level
		}
	}
}

// blockError returns the worst normalized deviation between the true field
// values and corner bilinear interpolation over every non-corner grid point
// of the block. Land and unreached points carry zeros, which keeps blocks
// from merging across a coastline.
func blockError(g *solver.Grid, c0, r0, size int) float64 {
	a00, d00, p00 := pointValues(g, c0, r0)
	a10, d10, p10 := pointValues(g, c0+size, r0)
	a01, d01, p01 := pointValues(g, c0, r0+size)
	a11, d11, p11 := pointValues(g, c0+size, r0+size)

	maxErr := 0.0
	for pr := 0; pr <= size; pr++ {
		fy := float64(pr) / float64(size)
		for pc := 0; pc <= size; pc++ {
			if (pc == 0 || pc == size) && (pr == 0 || pr == size) {
				continue
			}
			fx := float64(pc) / float64(size)
			a, d, p := pointValues(g, c0+pc, r0+pr)

			err := math.Abs(a - bilerp(a00, a10, a01, a11, fx, fy))
			if e := math.Abs(d-bilerp(d00, d10, d01, d11, fx, fy)) / directionErrScale; e > err {
				err = e
			}
			if e := math.Abs(p-bilerp(p00, p10, p01, p11, fx, fy)) / phaseErrScale; e > err {
				err = e
			}
			if err > maxErr {
				maxErr = err
			}
		}
	}
	return maxErr
}

func pointValues(g *solver.Grid, pc, pr int) (amp, dir, phase float64) {
	idx := g.Index(pc, pr)
	return g.Amplitude[idx], g.DirectionOffset[idx], g.PhaseOffset[idx]
}

func bilerp(v00, v10, v01, v11, fx, fy float64) float64 {
	top := v00 + (v10-v00)*fx
	bottom := v01 + (v11-v01)*fx
	return top + (bottom-top)*fy
}

// gradeLevels enforces the 2:1 constraint: while any base cell's level
// exceeds an axis neighbor's by more than one, split its whole block one
// level. Levels only ever decrease, so the fixpoint terminates.
func gradeLevels(levels []uint8, cellCols, cellRows int) {
	for changed := true; changed; {
		changed = false
		for r := 0; r < cellRows; r++ {
			for c := 0; c < cellCols; c++ {
				l := levels[r*cellCols+c]
				if l == 0 {
					continue
				}
				if !violatesGrading(levels, cellCols, cellRows, c, r, l) {
					continue
				}
				size := 1 << l
				c0 := (c / size) * size
				r0 := (r / size) * size
				setLevel(levels, cellCols, c0, r0, size, l-1)
				changed = true
			}
		}
	}
}

func violatesGrading(levels []uint8, cellCols, cellRows, c, r int, l uint8) bool {
	check := func(nc, nr int) bool {
		if nc < 0 || nc >= cellCols || nr < 0 || nr >= cellRows {
			return false
		}
		return l > levels[nr*cellCols+nc]+1
	}
	return check(c-1, r) || check(c+1, r) || check(c, r-1) || check(c, r+1)
}
