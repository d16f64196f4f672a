package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera()
	if c.Position != (math3d.Vec3{}) {
		t.Errorf("position = %v, want origin", c.Position)
	}
	if c.FOV != math.Pi/3 || c.Near != 0.1 || c.Far != 10 || c.AspectRatio != 0.75 {
		t.Errorf("camera = %+v", c)
	}
}

func TestCameraSetViewport(t *testing.T) {
	c := NewCamera()
	c.SetViewport(100, 50)
	if c.AspectRatio != 0.5 {
		t.Errorf("aspect = %v, want 0.5", c.AspectRatio)
	}
	c.SetViewport(0, 50)
	if c.AspectRatio != 0.5 {
		t.Errorf("zero width changed aspect to %v", c.AspectRatio)
	}
}

func TestCameraProjectionCache(t *testing.T) {
	c := NewCamera()
	p1 := c.ProjectionMatrix()
	if p1 != math3d.Perspective(math.Pi/3, 0.75, 0.1, 10) {
		t.Error("projection does not match Perspective")
	}

	c.SetFOV(math.Pi / 2)
	p2 := c.ProjectionMatrix()
	if p1 == p2 {
		t.Error("projection not rebuilt after SetFOV")
	}
	if got := p2.Get(1, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("f for 90° = %v, want 1", got)
	}

	c.SetClipPlanes(1, 2)
	if got := c.ProjectionMatrix().Get(2, 2); got != 2 {
		t.Errorf("depth scale = %v, want far/(far-near) = 2", got)
	}
}

func TestCameraWorldToScreen(t *testing.T) {
	c := NewCamera()
	if got := c.WorldToScreen(math3d.V3(0, 0, 5), 800, 600); got != math3d.V2i(400, 300) {
		t.Errorf("center = %v, want (400, 300)", got)
	}

	c.SetPosition(math3d.V3(1, 0, 0))
	if got := c.WorldToScreen(math3d.V3(1, 0, 5), 800, 600); got != math3d.V2i(400, 300) {
		t.Errorf("shifted center = %v, want (400, 300)", got)
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera()
	c.MoveForward(2)
	c.MoveRight(-1)
	c.MoveUp(0.5)
	if want := math3d.V3(-1, 0.5, 2); c.Position != want {
		t.Errorf("position = %v, want %v", c.Position, want)
	}
	if got := c.ToCamera(math3d.V3(0, 0, 5)); got != math3d.V3(1, -0.5, 3) {
		t.Errorf("ToCamera = %v", got)
	}
}

func TestLegacyProjector(t *testing.T) {
	l := LegacyProjector{FOV: 600}
	tests := []struct {
		p    math3d.Vec3
		want math3d.Vec2i
	}{
		{math3d.V3(0, 0, 5), math3d.V2i(400, 300)},
		{math3d.V3(1, 1, 5), math3d.V2i(520, 180)},
		{math3d.V3(-1, -1, 10), math3d.V2i(340, 360)},
	}
	for _, tc := range tests {
		if got := l.Project(tc.p, 800, 600); got != tc.want {
			t.Errorf("Project(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}
