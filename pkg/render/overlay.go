package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Overlay draws world-space debug lines (axes, bounding boxes) on top of a
// frame. Lines are not depth tested and segments with an endpoint in front
// of the near plane are dropped whole rather than clipped.
type Overlay struct {
	camera *Camera
	r      *Rasterizer
}

// NewOverlay creates an overlay projecting through camera into r's target.
func NewOverlay(camera *Camera, r *Rasterizer) *Overlay {
	return &Overlay{camera: camera, r: r}
}

// DrawLine3D draws the segment p1-p2. It reports whether anything was drawn.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, c Color) bool {
	near := o.camera.Near
	if o.camera.ToCamera(p1).Z < near || o.camera.ToCamera(p2).Z < near {
		return false
	}
	t := o.r.Target()
	w, h := t.Width(), t.Height()
	o.r.DrawLine(o.camera.WorldToScreen(p1, w, h), o.camera.WorldToScreen(p2, w, h), c)
	return true
}

// DrawAxes draws the x, y and z axes of a world transform in red, green
// and blue, each length units long in model space.
func (o *Overlay) DrawAxes(world math3d.Mat4, length float64) {
	origin := world.MulVec3(math3d.Vec3{})
	o.DrawLine3D(origin, world.MulVec3(math3d.V3(length, 0, 0)), ColorRed)
	o.DrawLine3D(origin, world.MulVec3(math3d.V3(0, length, 0)), ColorGreen)
	o.DrawLine3D(origin, world.MulVec3(math3d.V3(0, 0, length)), ColorBlue)
}

// boxEdges pairs AABB.Corners indices that differ in one bit.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
}

// DrawBox outlines a world-space box.
func (o *Overlay) DrawBox(box AABB, c Color) {
	corners := box.Corners()
	for _, e := range boxEdges {
		o.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}
