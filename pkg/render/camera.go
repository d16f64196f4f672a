package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is a fixed-orientation perspective camera looking down +z.
// Camera space is world space shifted by -Position.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Height / Width
	Near        float64 // Near plane distance
	Far         float64 // Far plane distance

	projMatrix math3d.Mat4
	projDirty  bool
}

// NewCamera creates a camera at the origin with a 60° field of view and
// near/far planes at 0.1 and 10.
func NewCamera() *Camera {
	return &Camera{
		FOV:         math.Pi / 3,
		AspectRatio: 3.0 / 4.0,
		Near:        0.1,
		Far:         10,
		projDirty:   true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetFOV sets the vertical field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio (height / width).
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetViewport derives the aspect ratio from a surface size. Zero sizes are
// ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float64(height) / float64(width)
	if aspect != c.AspectRatio {
		c.SetAspectRatio(aspect)
	}
}

// SetClipPlanes sets the near and far planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ProjectionMatrix returns the projection matrix, rebuilding it only after
// a parameter changed.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ToCamera converts a world-space point to camera space.
func (c *Camera) ToCamera(world math3d.Vec3) math3d.Vec3 {
	return world.Sub(c.Position)
}

// MoveForward moves the camera along +z (or back if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position.Z += distance
}

// MoveRight moves the camera along +x (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position.X += distance
}

// MoveUp moves the camera along +y (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position.Y += distance
}

// WorldToScreen projects a world point to pixel coordinates on a
// width x height viewport. No clipping is done; points behind the camera
// land wherever the divide puts them.
func (c *Camera) WorldToScreen(world math3d.Vec3, width, height int) math3d.Vec2i {
	clip := c.ProjectionMatrix().MulVec4(c.ToCamera(world).Vec4())
	return math3d.ToViewport(clip.PerspectiveDivide(), width, height)
}
