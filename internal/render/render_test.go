package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/meshing"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

func solveSmall(t *testing.T) (*solver.Grid, config.Solver) {
	t.Helper()
	cfg := config.Default()
	cfg.CellSpacing = 10
	cfg.DefaultHalfExtent = 200
	return solver.Solve(terrain.Flat{Depth: 100}, wave.Source{Wavelength: 40}, 0, nil, cfg), cfg
}

func TestHeatmapImage(t *testing.T) {
	g, _ := solveSmall(t)
	img := HeatmapImage(g, g.Amplitude, "amplitude")

	b := img.Bounds()
	if b.Dx() != g.Cols || b.Dy() != g.Rows {
		t.Fatalf("image %dx%d, want %dx%d", b.Dx(), b.Dy(), g.Cols, g.Rows)
	}
}

func TestWriteHeatmapRoundTrip(t *testing.T) {
	g, _ := solveSmall(t)
	path := filepath.Join(t.TempDir(), "amp.png")

	if err := WriteHeatmap(path, g, g.Amplitude, "amplitude"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != g.Cols {
		t.Errorf("decoded width %d, want %d", img.Bounds().Dx(), g.Cols)
	}
}

func TestWireframeImage(t *testing.T) {
	g, cfg := solveSmall(t)
	m := meshing.Build(g, cfg)

	img := WireframeImage(g, m, 2)
	b := img.Bounds()
	if b.Dx() != (g.Cols-1)*2+1 || b.Dy() != (g.Rows-1)*2+1 {
		t.Fatalf("unexpected wireframe size %dx%d", b.Dx(), b.Dy())
	}
}
