package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// CellStatus tracks a grid cell through the fast-marching sweeps.
type CellStatus uint8

const (
	// StatusFar marks an untouched cell.
	StatusFar CellStatus = iota
	// StatusTrial marks a cell with a tentative value sitting in the heap.
	StatusTrial
	// StatusKnown marks a finalized cell; its travel time never changes again.
	StatusKnown
	// StatusLand marks a permanently excluded dry cell.
	StatusLand
)

// Grid is the uniform lattice a single solve runs on. Every per-cell field is
// one flat slice indexed by row*Cols+col. A Grid is built fresh per solve and
// discarded once the mesh is emitted.
type Grid struct {
	Origin  mgl64.Vec2 // world position of grid point (0, 0)
	Spacing float64
	Cols    int
	Rows    int

	Source wave.Source
	Tide   float64

	Status     []CellStatus
	TravelTime []float64
	Speed      []float64
	Depth      []float64

	// DiffractionAmp is 1 for cells lit by the primary pass, the cylindrical
	// spreading multiplier for cells reached only through the shadow pass,
	// and 0 for cells never reached at all.
	DiffractionAmp []float64

	// Derived per-cell outputs, filled by deriveProperties.
	Amplitude       []float64
	DirectionOffset []float64
	PhaseOffset     []float64

	// planar is the ideal unobstructed travel time, offset so its minimum
	// over water is zero. Used for seeding and for the phase reference.
	planar []float64

	// SolveStats is filled at the end of Solve.
	SolveStats Stats
}

// Index flattens grid coordinates.
func (g *Grid) Index(col, row int) int {
	return row*g.Cols + col
}

// Pos returns the world position of a grid point.
func (g *Grid) Pos(col, row int) mgl64.Vec2 {
	return mgl64.Vec2{
		g.Origin[0] + float64(col)*g.Spacing,
		g.Origin[1] + float64(row)*g.Spacing,
	}
}

// Reached reports whether a cell got a finite travel time from either pass.
func (g *Grid) Reached(idx int) bool {
	return g.Status[idx] == StatusKnown
}

// sampleGrid rasterizes the terrain onto the lattice: depth from tide minus
// height, phase speed from the dispersion relation, land where the water runs
// out. Land cells never enter the heap and keep an infinite travel time.
func sampleGrid(field terrain.HeightSampler, src wave.Source, tide float64, origin mgl64.Vec2, spacing float64, cols, rows int) *Grid {
	n := cols * rows
	g := &Grid{
		Origin:          origin,
		Spacing:         spacing,
		Cols:            cols,
		Rows:            rows,
		Source:          src,
		Tide:            tide,
		Status:          make([]CellStatus, n),
		TravelTime:      make([]float64, n),
		Speed:           make([]float64, n),
		Depth:           make([]float64, n),
		DiffractionAmp:  make([]float64, n),
		Amplitude:       make([]float64, n),
		DirectionOffset: make([]float64, n),
		PhaseOffset:     make([]float64, n),
		planar:          make([]float64, n),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := g.Index(col, row)
			p := g.Pos(col, row)
			depth := tide - field.HeightAt(p[0], p[1])
			g.Depth[idx] = depth
			g.TravelTime[idx] = math.Inf(1)
			if depth <= 0 {
				g.Status[idx] = StatusLand
				continue
			}
			g.Speed[idx] = src.PhaseSpeed(depth)
		}
	}
	return g
}
