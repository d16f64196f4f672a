package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Triangle is a projected face in integer screen coordinates.
type Triangle [3]math3d.Vec2i

// RasterStats counts rasterizer work for one frame.
type RasterStats struct {
	Lines      int // DrawLine calls that wrote at least one pixel
	Triangles  int // filled triangles submitted
	Degenerate int // filled triangles skipped because all corners share a row
}

// Rasterizer draws lines and scan-line filled triangles into a Surface.
// It owns no pixels and keeps no state between calls besides Stats.
type Rasterizer struct {
	target Surface
	Stats  RasterStats
}

// NewRasterizer creates a rasterizer writing to target.
func NewRasterizer(target Surface) *Rasterizer {
	return &Rasterizer{target: target}
}

// Target returns the surface being drawn into.
func (r *Rasterizer) Target() Surface {
	return r.target
}

// ResetStats clears the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = RasterStats{}
}

// DrawLine draws a line with a DDA walk: steps = max(|dx|, |dy|), and each
// of the steps+1 positions from `from` to `to` is truncated toward zero.
// A zero-length line draws nothing.
func (r *Rasterizer) DrawLine(from, to math3d.Vec2i, c Color) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	r.Stats.Lines++

	x0, y0 := float64(from.X), float64(from.Y)
	n := float64(steps)
	for i := 0; i <= steps; i++ {
		x := x0 + float64(dx*i)/n
		y := y0 + float64(dy*i)/n
		r.target.SetPixel(int(x), int(y), c)
	}
}

// DrawTriangleWireframe outlines t with three lines.
func (r *Rasterizer) DrawTriangleWireframe(t Triangle, c Color) {
	r.DrawLine(t[0], t[1], c)
	r.DrawLine(t[1], t[2], c)
	r.DrawLine(t[2], t[0], c)
}

// DrawTriangleFilled fills t with horizontal spans.
//
// Corners are ordered by y, then the triangle is split at the middle
// corner's scanline into a flat-bottom half (drawn top to bottom, including
// the split row) and a flat-top half (drawn bottom to top, excluding it).
// Triangles whose corners all share one row cover no area and are skipped.
func (r *Rasterizer) DrawTriangleFilled(t Triangle, c Color) {
	a, b, m := sortByY(t)
	r.Stats.Triangles++

	switch {
	case a.Y == b.Y && b.Y == m.Y:
		r.Stats.Degenerate++
		Logger().Debug("skip zero-height triangle", "triangle", t)
	case b.Y == m.Y:
		r.fillFlatBottom(a, b, m, c)
	case a.Y == b.Y:
		r.fillFlatTop(a, b, m, c)
	default:
		// Point on the long edge a-m at b's scanline.
		mid := math3d.Vec2i{
			X: int(float64((m.X-a.X)*(b.Y-a.Y))/float64(m.Y-a.Y)) + a.X,
			Y: b.Y,
		}
		r.fillFlatBottom(a, b, mid, c)
		r.fillFlatTop(b, mid, m, c)
	}
}

// fillFlatBottom fills a triangle whose lower edge b-c is horizontal.
// Rows run from top.Y to b.Y inclusive.
func (r *Rasterizer) fillFlatBottom(top, b, c math3d.Vec2i, col Color) {
	slope1 := float64(b.X-top.X) / float64(b.Y-top.Y)
	slope2 := float64(c.X-top.X) / float64(c.Y-top.Y)

	x1 := float64(top.X)
	x2 := float64(top.X)
	for y := top.Y; y <= b.Y; y++ {
		r.DrawLine(math3d.Vec2i{X: int(x1), Y: y}, math3d.Vec2i{X: int(x2), Y: y}, col)
		x1 += slope1
		x2 += slope2
	}
}

// fillFlatTop fills a triangle whose upper edge a-b is horizontal.
// Rows run from bottom.Y up to, but not including, a.Y.
func (r *Rasterizer) fillFlatTop(a, b, bottom math3d.Vec2i, col Color) {
	slope1 := float64(bottom.X-a.X) / float64(bottom.Y-a.Y)
	slope2 := float64(bottom.X-b.X) / float64(bottom.Y-b.Y)

	x1 := float64(bottom.X)
	x2 := float64(bottom.X)
	for y := bottom.Y; y > a.Y; y-- {
		r.DrawLine(math3d.Vec2i{X: int(x1), Y: y}, math3d.Vec2i{X: int(x2), Y: y}, col)
		x1 -= slope1
		x2 -= slope2
	}
}

// sortByY orders the corners by ascending y. Corners with equal y keep
// their input order.
func sortByY(t Triangle) (a, b, c math3d.Vec2i) {
	a, b, c = t[0], t[1], t[2]
	if a.Y > b.Y {
		a, b = b, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if a.Y > b.Y {
		a, b = b, a
	}
	return a, b, c
}

// DrawGrid plots a dot every xStep pixels along every yStep-th row,
// starting at the origin.
func (r *Rasterizer) DrawGrid(xStep, yStep int, c Color) {
	if xStep <= 0 || yStep <= 0 {
		return
	}
	w, h := r.target.Width(), r.target.Height()
	for y := 0; y < h; y += yStep {
		for x := 0; x < w; x += xStep {
			r.target.SetPixel(x, y, c)
		}
	}
}

// DrawRect fills the rectangle at pos with the given size, clamped to the
// target.
func (r *Rasterizer) DrawRect(pos, size math3d.Vec2i, c Color) {
	x0, y0 := max(pos.X, 0), max(pos.Y, 0)
	x1 := min(pos.X+size.X, r.target.Width())
	y1 := min(pos.Y+size.Y, r.target.Height())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.target.SetPixel(x, y, c)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
