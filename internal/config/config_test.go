package config

import (
	"math"
	"testing"
)

func TestClampedFixesZeroValue(t *testing.T) {
	var s Solver // all zero
	c := s.Clamped()

	if c.CellSpacing <= 0 {
		t.Error("CellSpacing not restored")
	}
	if c.DefaultHalfExtent <= 0 {
		t.Error("DefaultHalfExtent not restored")
	}
	if c.SeedBandPeriods <= 0 {
		t.Error("SeedBandPeriods not restored")
	}
	if c.MaxTurnAngle <= 0 {
		t.Error("MaxTurnAngle not restored")
	}
	if c.EdgeBlendCells < 1 {
		t.Error("EdgeBlendCells not restored")
	}
}

func TestClampedCapsRanges(t *testing.T) {
	s := Default()
	s.MaxTurnAngle = 10
	s.MaxQuadLevel = 20
	s.MinDiffractionAmp = -1
	c := s.Clamped()

	if c.MaxTurnAngle != math.Pi {
		t.Errorf("MaxTurnAngle = %v, want pi", c.MaxTurnAngle)
	}
	if c.MaxQuadLevel != 8 {
		t.Errorf("MaxQuadLevel = %v, want 8", c.MaxQuadLevel)
	}
	if c.MinDiffractionAmp != 0 {
		t.Errorf("MinDiffractionAmp = %v, want 0", c.MinDiffractionAmp)
	}
}

func TestDefaultIsStable(t *testing.T) {
	d := Default()
	if d != d.Clamped() {
		t.Error("Default config should survive Clamped unchanged")
	}
}
