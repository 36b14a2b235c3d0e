// Command tackwave runs one wavefront solve from the command line: pick a
// terrain preset and wave parameters, get solve statistics and optional
// diagnostic PNGs.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/meshing"
	"github.com/simonbw/tack-and-trim-sub009/internal/profiling"
	"github.com/simonbw/tack-and-trim-sub009/internal/render"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

func main() {
	var (
		preset     = flag.String("terrain", "island", "Terrain preset (island, flat, bar, wall)")
		seed       = flag.Int64("seed", 1, "Island terrain seed")
		wavelength = flag.Float64("wavelength", 40, "Wavelength in world units")
		direction  = flag.Float64("direction", 0, "Wave direction in degrees, 0 = +x")
		tide       = flag.Float64("tide", 0, "Tide height offset")
		spacing    = flag.Float64("spacing", 0, "Grid cell spacing (0 = default)")
		halfExtent = flag.Float64("half-extent", 0, "Domain half extent for unbounded terrain (0 = default)")
		tolerance  = flag.Float64("tolerance", 0, "Mesh simplification tolerance (0 = default)")
		out        = flag.String("out", "", "Prefix for diagnostic PNGs (empty = skip)")
		timing     = flag.Bool("timing", false, "Print per-phase timing report")
	)
	flag.Parse()

	cfg := config.Default()
	if *spacing > 0 {
		cfg.CellSpacing = *spacing
	}
	if *halfExtent > 0 {
		cfg.DefaultHalfExtent = *halfExtent
	}
	if *tolerance > 0 {
		cfg.SimplifyTolerance = *tolerance
	}

	field, err := buildTerrain(*preset, *seed, cfg)
	if err != nil {
		log.Fatal(err)
	}

	src := wave.Source{
		Wavelength: *wavelength,
		Direction:  *direction * math.Pi / 180,
	}
	if src.Wavelength <= 0 {
		log.Fatal("wavelength must be positive")
	}

	grid := solver.Solve(field, src, *tide, nil, cfg)
	mesh := meshing.Build(grid, cfg)

	s := grid.SolveStats
	fmt.Printf("grid: %dx%d (%d cells, %d water, %d land)\n", s.Cols, s.Rows, s.Cols*s.Rows, s.WaterCells, s.LandCells)
	fmt.Printf("solve: %d primary, %d shadow, %d unreached wet cells\n", s.PrimaryCells, s.ShadowCells, s.UnreachedWet)
	fmt.Printf("fields: max travel time %.1fs, max amplitude %.2f\n", s.MaxTravelTime, s.MaxAmplitude)
	fmt.Printf("mesh: %d vertices, %d triangles (%.1f%% of full grid)\n",
		mesh.VertexCount(), mesh.TriangleCount(),
		100*float64(mesh.TriangleCount())/float64(2*(s.Cols-1)*(s.Rows-1)))

	if *out != "" {
		writes := []struct {
			suffix string
			err    error
		}{
			{"depth", render.WriteHeatmap(*out+"-depth.png", grid, grid.Depth, "depth")},
			{"time", render.WriteHeatmap(*out+"-time.png", grid, grid.TravelTime, "travel time")},
			{"amplitude", render.WriteHeatmap(*out+"-amplitude.png", grid, grid.Amplitude, "amplitude")},
			{"mesh", render.WriteWireframe(*out+"-mesh.png", grid, mesh, 2)},
		}
		for _, w := range writes {
			if w.err != nil {
				log.Fatalf("write %s: %v", w.suffix, w.err)
			}
		}
		log.Printf("wrote %s-{depth,time,amplitude,mesh}.png", *out)
	}

	if *timing {
		fmt.Println("timing:", profiling.Report())
	}
}

func buildTerrain(preset string, seed int64, cfg config.Solver) (terrain.HeightSampler, error) {
	switch preset {
	case "island":
		return terrain.NewIsland(seed, 2000, 120, 30), nil
	case "flat":
		return terrain.Flat{Depth: 100}, nil
	case "bar":
		return terrain.Bar{Depth: 100, CrestX: 0, CrestDepth: 3, HalfWidth: 60}, nil
	case "wall":
		return terrain.Wall{Depth: 100, X0: -20, X1: 20, Y0: -300, Y1: 300}, nil
	default:
		return nil, fmt.Errorf("unknown terrain preset %q", preset)
	}
}
