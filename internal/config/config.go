package config

import "math"

// Solver collects every tunable of the wavefront pipeline in one place so a
// solve can be reproduced from a single value. All distances are in world
// length units; all angles are radians.
type Solver struct {
	// CellSpacing is the grid resolution of the eikonal solve.
	CellSpacing float64

	// DefaultHalfExtent sizes the simulation domain when the caller supplies
	// no coastline bounds.
	DefaultHalfExtent float64

	// MarginMin and MarginWavelengths size the safety margin around the
	// coastline bounds: margin = max(MarginMin, MarginWavelengths * wavelength).
	MarginMin         float64
	MarginWavelengths float64

	// SeedBandPeriods is the depth of the upwind seed band in wave periods.
	// One period is enough for any incidence angle; smaller values break
	// near-grazing waves.
	SeedBandPeriods float64

	// MaxIterations bounds each fast-marching sweep. Zero means one pop per
	// grid cell, which is the natural bound of a draining heap.
	MaxIterations int

	// MaxTurnAngle is the primary pass's turn limit: a cell whose local
	// propagation direction deviates from the base wave direction by more
	// than this stops expanding the front, leaving the region beyond it to
	// the diffraction pass. Without it the eikonal front would wrap around
	// obstacles at full amplitude and no shadow would ever form.
	MaxTurnAngle float64

	// MinDiffractionAmp is the stall cutoff of the diffraction pass: a shadow
	// cell whose spreading multiplier falls below it is finalized but no
	// longer expands the front.
	MinDiffractionAmp float64

	// ConvergenceGain scales the travel-time Laplacian when deriving the
	// ray-convergence amplitude factor.
	ConvergenceGain float64

	// SimplifyTolerance is the maximum normalized bilinear-interpolation
	// error allowed when merging quadtree cells.
	SimplifyTolerance float64

	// MaxQuadLevel caps quadtree cell size at 2^MaxQuadLevel grid cells.
	MaxQuadLevel int

	// EdgeBlendCells is the width, in grid cells, of the 0..1 blend-weight
	// ramp at the domain border.
	EdgeBlendCells int
}

// Default returns the configuration used by the game's water surface.
func Default() Solver {
	return Solver{
		CellSpacing:       10,
		DefaultHalfExtent: 4000,
		MarginMin:         2000,
		MarginWavelengths: 3,
		SeedBandPeriods:   1,
		MaxIterations:     0,
		MaxTurnAngle:      math.Pi / 3,
		MinDiffractionAmp: 0.02,
		ConvergenceGain:   0.5,
		SimplifyTolerance: 0.05,
		MaxQuadLevel:      5,
		EdgeBlendCells:    8,
	}
}

// Clamped returns a copy with out-of-range fields pulled back to safe values.
func (s Solver) Clamped() Solver {
	if s.CellSpacing <= 0 {
		s.CellSpacing = Default().CellSpacing
	}
	if s.DefaultHalfExtent <= 0 {
		s.DefaultHalfExtent = Default().DefaultHalfExtent
	}
	if s.SeedBandPeriods <= 0 {
		s.SeedBandPeriods = 1
	}
	if s.MaxIterations < 0 {
		s.MaxIterations = 0
	}
	if s.MaxTurnAngle <= 0 {
		s.MaxTurnAngle = Default().MaxTurnAngle
	}
	if s.MaxTurnAngle > math.Pi {
		s.MaxTurnAngle = math.Pi
	}
	if s.MinDiffractionAmp < 0 {
		s.MinDiffractionAmp = 0
	}
	if s.SimplifyTolerance < 0 {
		s.SimplifyTolerance = 0
	}
	if s.MaxQuadLevel < 0 {
		s.MaxQuadLevel = 0
	}
	if s.MaxQuadLevel > 8 {
		s.MaxQuadLevel = 8
	}
	if s.EdgeBlendCells < 1 {
		s.EdgeBlendCells = 1
	}
	return s
}
