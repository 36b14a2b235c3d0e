// Package meshing converts a solved wavefront grid into a simplified triangle
// mesh for the water-surface shader: a quadtree merge collapses regions the
// shader can interpolate, and a hanging-node triangulation closes the seams
// between cells of different size.
package meshing

import (
	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/profiling"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
)

// VertexStride is the number of float32 per vertex: world x, y, amplitude
// factor, direction offset, phase offset, edge blend weight.
const VertexStride = 6

// Mesh is the in-process handoff to the rendering side.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Build simplifies the solved grid into a graded quadtree and triangulates
// it. Quadtree cells whose every grid point is dry are skipped; everything
// touching water is emitted, with unreached points zero-weighted by their
// amplitude.
func Build(g *solver.Grid, cfg config.Solver) *Mesh {
	cfg = cfg.Clamped()
	defer profiling.Track("meshing.Build")()

	levels := simplify(g, cfg)
	b := &builder{
		g:        g,
		cfg:      cfg,
		levels:   levels,
		cellCols: g.Cols - 1,
		cellRows: g.Rows - 1,
		vertexOf: make(map[int]uint32),
		mesh:     &Mesh{},
	}

	for r := 0; r < b.cellRows; r++ {
		for c := 0; c < b.cellCols; c++ {
			level := levels[r*b.cellCols+c]
			size := 1 << level
			if c%size != 0 || r%size != 0 {
				continue // not the block anchor
			}
			if b.allLand(c, r, size) {
				continue
			}
			b.emitCell(c, r, size, level)
		}
	}
	return b.mesh
}

type builder struct {
	g        *solver.Grid
	cfg      config.Solver
	levels   []uint8
	cellCols int
	cellRows int
	vertexOf map[int]uint32 // grid point index -> vertex index
	mesh     *Mesh
}

func (b *builder) allLand(c0, r0, size int) bool {
	for pr := r0; pr <= r0+size; pr++ {
		for pc := c0; pc <= c0+size; pc++ {
			if b.g.Status[b.g.Index(pc, pr)] != solver.StatusLand {
				return false
			}
		}
	}
	return true
}

// emitCell triangulates one quadtree cell. With no hanging nodes two
// triangles suffice; otherwise the cell fans from its center through the
// boundary polygon of corners plus edge midpoints, one triangle per polygon
// edge, so smaller neighbors never leave a T-junction crack.
func (b *builder) emitCell(c, r, size int, level uint8) {
	hangS := b.edgeHasSmaller(c, r-1, level)
	hangN := b.edgeHasSmaller(c, r+size, level)
	hangW := b.edgeHasSmaller(c-1, r, level)
	hangE := b.edgeHasSmaller(c+size, r, level)

	if !hangS && !hangN && !hangW && !hangE {
		v00 := b.vertex(c, r)
		v10 := b.vertex(c+size, r)
		v01 := b.vertex(c, r+size)
		v11 := b.vertex(c+size, r+size)
		b.mesh.Indices = append(b.mesh.Indices, v00, v10, v11, v00, v11, v01)
		return
	}

	half := size / 2
	center := b.vertex(c+half, r+half)

	// Boundary polygon, counterclockwise from the min corner. With 2:1
	// grading an edge carries at most one hanging node, at its midpoint.
	ring := make([]uint32, 0, 8)
	ring = append(ring, b.vertex(c, r))
	if hangS {
		ring = append(ring, b.vertex(c+half, r))
	}
	ring = append(ring, b.vertex(c+size, r))
	if hangE {
		ring = append(ring, b.vertex(c+size, r+half))
	}
	ring = append(ring, b.vertex(c+size, r+size))
	if hangN {
		ring = append(ring, b.vertex(c+half, r+size))
	}
	ring = append(ring, b.vertex(c, r+size))
	if hangW {
		ring = append(ring, b.vertex(c, r+half))
	}

	for i := range ring {
		next := ring[(i+1)%len(ring)]
		b.mesh.Indices = append(b.mesh.Indices, center, ring[i], next)
	}
}

// edgeHasSmaller reports whether the neighbor block containing base cell
// (nc, nr) is finer than level. Grading guarantees an edge faces either one
// block of equal or larger size, or two blocks exactly one level finer, so
// sampling a single base cell decides the whole edge.
func (b *builder) edgeHasSmaller(nc, nr int, level uint8) bool {
	if nc < 0 || nc >= b.cellCols || nr < 0 || nr >= b.cellRows {
		return false
	}
	return b.levels[nr*b.cellCols+nc] < level
}

func (b *builder) vertex(pc, pr int) uint32 {
	key := pr*b.g.Cols + pc
	if v, ok := b.vertexOf[key]; ok {
		return v
	}
	g := b.g
	idx := g.Index(pc, pr)
	pos := g.Pos(pc, pr)

	blend := edgeDistance(pc, pr, g.Cols, g.Rows) / float64(b.cfg.EdgeBlendCells)
	if blend > 1 {
		blend = 1
	}

	v := uint32(len(b.mesh.Vertices) / VertexStride)
	b.mesh.Vertices = append(b.mesh.Vertices,
		float32(pos[0]), float32(pos[1]),
		float32(g.Amplitude[idx]),
		float32(g.DirectionOffset[idx]),
		float32(g.PhaseOffset[idx]),
		float32(blend),
	)
	b.vertexOf[key] = v
	return v
}

func edgeDistance(pc, pr, cols, rows int) float64 {
	d := pc
	if pr < d {
		d = pr
	}
	if e := cols - 1 - pc; e < d {
		d = e
	}
	if e := rows - 1 - pr; e < d {
		d = e
	}
	return float64(d)
}
