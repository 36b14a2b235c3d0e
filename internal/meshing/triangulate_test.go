package meshing

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
)

// meshArea sums signed triangle areas; counterclockwise winding keeps every
// contribution positive.
func meshArea(t *testing.T, m *Mesh) float64 {
	t.Helper()
	total := 0.0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ax, ay := vertexXY(m, m.Indices[i])
		bx, by := vertexXY(m, m.Indices[i+1])
		cx, cy := vertexXY(m, m.Indices[i+2])
		signed := ((bx-ax)*(cy-ay) - (cx-ax)*(by-ay)) / 2
		require.Greater(t, signed, 0.0, "triangle %d not counterclockwise", i/3)
		total += signed
	}
	return total
}

func vertexXY(m *Mesh, v uint32) (float64, float64) {
	base := int(v) * VertexStride
	return float64(m.Vertices[base]), float64(m.Vertices[base+1])
}

func TestBuildConstantField(t *testing.T) {
	g := newTestGrid(33, 33, constantField)
	m := Build(g, meshConfig())

	// 32x32 cells merge into four 16-cell blocks: a 3x3 point lattice.
	assert.Equal(t, 9, m.VertexCount())
	assert.Equal(t, 8, m.TriangleCount())

	want := float64(32*32) * g.Spacing * g.Spacing
	assert.InDelta(t, want, meshArea(t, m), 1e-6)
}

// Mixed cell sizes force hanging nodes; the fan triangulation must still
// tile the domain without cracks or overlap, which the exact area check
// catches from both sides.
func TestBuildHangingNodesCoverDomain(t *testing.T) {
	g := newTestGrid(65, 65, cornerDetailField)
	m := Build(g, meshConfig())

	want := float64(64*64) * g.Spacing * g.Spacing
	assert.InDelta(t, want, meshArea(t, m), 1e-4)

	// The fine corner next to merged far field guarantees at least one cell
	// took the center-fan path.
	assert.Greater(t, m.TriangleCount(), 2*64*64/256,
		"no cell seems to have fanned")
}

func TestBuildDedupsVertices(t *testing.T) {
	g := newTestGrid(65, 65, cornerDetailField)
	m := Build(g, meshConfig())

	seen := map[string]bool{}
	for v := 0; v < m.VertexCount(); v++ {
		x, y := vertexXY(m, uint32(v))
		key := fmt.Sprintf("%v/%v", x, y)
		require.False(t, seen[key], "duplicate vertex at (%v, %v)", x, y)
		seen[key] = true
	}

	// Every index must point into the buffer.
	for _, idx := range m.Indices {
		require.Less(t, int(idx), m.VertexCount())
	}
}

func TestBuildSkipsDryBlocks(t *testing.T) {
	g := newTestGrid(33, 33, constantField)
	// Dry an aligned 8x8-cell square in the middle.
	for pr := 8; pr <= 16; pr++ {
		for pc := 8; pc <= 16; pc++ {
			idx := g.Index(pc, pr)
			g.Status[idx] = solver.StatusLand
			g.Amplitude[idx] = 0
		}
	}

	m := Build(g, meshConfig())

	want := float64(32*32-8*8) * g.Spacing * g.Spacing
	assert.InDelta(t, want, meshArea(t, m), 1e-6)
}

func TestBuildEdgeBlendWeights(t *testing.T) {
	cfg := meshConfig()
	cfg.MaxQuadLevel = 0 // keep every grid point a vertex
	g := newTestGrid(33, 33, constantField)
	m := Build(g, cfg)

	require.Equal(t, 33*33, m.VertexCount())
	for v := 0; v < m.VertexCount(); v++ {
		base := v * VertexStride
		x, y := vertexXY(m, uint32(v))
		blend := float64(m.Vertices[base+5])

		pc := int(math.Round(x / g.Spacing))
		pr := int(math.Round(y / g.Spacing))
		d := pc
		for _, e := range []int{pr, 32 - pc, 32 - pr} {
			if e < d {
				d = e
			}
		}
		want := math.Min(1, float64(d)/float64(cfg.EdgeBlendCells))
		assert.InDelta(t, want, blend, 1e-6, "blend at point (%d, %d)", pc, pr)
	}
}
