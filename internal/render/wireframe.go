package render

import (
	"image"
	"image/color"

	"github.com/simonbw/tack-and-trim-sub009/internal/meshing"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
)

// WireframeImage draws the simplified mesh edges over a dark background,
// scaled to scale pixels per grid cell, to eyeball how the quadtree adapts
// to the coastline and shadow boundaries.
func WireframeImage(g *solver.Grid, m *meshing.Mesh, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w := (g.Cols - 1) * scale
	h := (g.Rows - 1) * scale
	img := image.NewRGBA(image.Rect(0, 0, w+1, h+1))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 15
		}
	}

	edge := color.RGBA{120, 200, 255, 255}
	px := func(vi uint32) (int, int) {
		x := float64(m.Vertices[vi*meshing.VertexStride])
		y := float64(m.Vertices[vi*meshing.VertexStride+1])
		ix := int((x - g.Origin[0]) / g.Spacing * float64(scale))
		iy := h - int((y-g.Origin[1])/g.Spacing*float64(scale))
		return ix, iy
	}

	for t := 0; t < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		ax, ay := px(a)
		bx, by := px(b)
		cx, cy := px(c)
		drawLine(img, ax, ay, bx, by, edge)
		drawLine(img, bx, by, cx, cy, edge)
		drawLine(img, cx, cy, ax, ay, edge)
	}
	return img
}

// WriteWireframe renders the mesh wireframe straight to a PNG file.
func WriteWireframe(path string, g *solver.Grid, m *meshing.Mesh, scale int) error {
	return writePNG(path, WireframeImage(g, m, scale))
}

// drawLine is plain Bresenham.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
