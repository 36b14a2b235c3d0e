// Package solver computes a travel-time field for one directional wave train
// over arbitrary terrain by solving the eikonal equation |grad T| = 1/c with
// the fast marching method, then runs a secondary pass that diffracts energy
// into shadow zones and derives per-cell direction, phase and amplitude for
// the water surface.
//
// A solve is a one-shot batch: it allocates its own grid, performs no I/O,
// touches no shared state and runs to completion. Callers wanting several
// wave trains run independent solves, one per source (see Pool).
package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/profiling"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// Bounds is an axis-aligned world-space rectangle.
type Bounds struct {
	Min, Max mgl64.Vec2
}

// Stats summarizes one solve for logs and the CLI.
type Stats struct {
	Cols, Rows    int
	WaterCells    int
	LandCells     int
	PrimaryCells  int
	ShadowCells   int
	UnreachedWet  int
	MaxTravelTime float64
	MaxAmplitude  float64
}

// Solve runs the full pipeline for a single wave source over one terrain
// snapshot and returns the filled grid. bounds, when nil, is taken from the
// terrain if it knows its coastline, else the configured default half-extent
// around the origin is used. The returned grid carries the derived per-cell
// fields ready for meshing.
func Solve(field terrain.HeightSampler, src wave.Source, tide float64, bounds *Bounds, cfg config.Solver) *Grid {
	cfg = cfg.Clamped()
	defer profiling.Track("solver.Solve")()

	if bounds == nil {
		if b, ok := field.(terrain.Bounded); ok {
			min, max := b.CoastBounds()
			bounds = &Bounds{Min: min, Max: max}
		}
	}
	var min, max mgl64.Vec2
	if bounds != nil {
		margin := math.Max(cfg.MarginMin, cfg.MarginWavelengths*src.Wavelength)
		min = bounds.Min.Sub(mgl64.Vec2{margin, margin})
		max = bounds.Max.Add(mgl64.Vec2{margin, margin})
	} else {
		he := cfg.DefaultHalfExtent
		min = mgl64.Vec2{-he, -he}
		max = mgl64.Vec2{he, he}
	}

	cols := int(math.Ceil((max[0]-min[0])/cfg.CellSpacing)) + 1
	rows := int(math.Ceil((max[1]-min[1])/cfg.CellSpacing)) + 1
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}

	stopSample := profiling.Track("solver.sample")
	g := sampleGrid(field, src, tide, min, cfg.CellSpacing, cols, rows)
	stopSample()

	stopPrimary := profiling.Track("solver.primary")
	seeded := g.seedPlanar(cfg)
	// The turn limit keeps the primary front from wrapping around obstacles
	// at full strength; what it leaves Far becomes the shadow zone the
	// diffraction pass fills in.
	primary := seeded + g.propagate(g.Status, g.TravelTime, cfg.MaxIterations, func(idx int) bool {
		return g.turnOffset(g.Status, g.TravelTime, idx) <= cfg.MaxTurnAngle
	})
	stopPrimary()

	stopShadow := profiling.Track("solver.diffraction")
	shadow := g.solveDiffraction(cfg)
	stopShadow()

	stopDerive := profiling.Track("solver.derive")
	g.deriveProperties(cfg)
	stopDerive()

	g.stats(primary, shadow)
	return g
}

// seedPlanar marks the upwind seed band Known: every water cell whose ideal
// planar travel time lies within the configured band of the domain minimum.
// A band, not a single edge row, so the seed stays valid at any incidence
// angle, including near-grazing. Returns the number of seeded cells.
func (g *Grid) seedPlanar(cfg config.Solver) int {
	dir := g.Source.DirectionVec()
	cDeep := g.Source.DeepSpeed()

	minProj := math.Inf(1)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			if g.Status[idx] == StatusLand {
				continue
			}
			if proj := g.Pos(col, row).Dot(dir); proj < minProj {
				minProj = proj
			}
		}
	}
	if math.IsInf(minProj, 1) {
		return 0 // no water anywhere
	}

	band := cfg.SeedBandPeriods * g.Source.Period()
	seeded := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := g.Index(col, row)
			planar := (g.Pos(col, row).Dot(dir) - minProj) / cDeep
			g.planar[idx] = planar
			if g.Status[idx] == StatusLand {
				continue
			}
			if planar <= band {
				g.Status[idx] = StatusKnown
				g.TravelTime[idx] = math.Max(0, planar)
				seeded++
			}
		}
	}
	return seeded
}

func (g *Grid) stats(primary, shadow int) {
	s := Stats{Cols: g.Cols, Rows: g.Rows, PrimaryCells: primary, ShadowCells: shadow}
	for idx := range g.Status {
		switch g.Status[idx] {
		case StatusLand:
			s.LandCells++
		default:
			s.WaterCells++
			if g.Status[idx] != StatusKnown {
				s.UnreachedWet++
			}
		}
		if g.Status[idx] == StatusKnown && g.TravelTime[idx] > s.MaxTravelTime {
			s.MaxTravelTime = g.TravelTime[idx]
		}
	}
	if len(g.Amplitude) > 0 {
		s.MaxAmplitude = floats.Max(g.Amplitude)
	}
	g.SolveStats = s
}
