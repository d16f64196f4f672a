// Package scene wires meshes, transforms and systems into a frame loop:
// a spin system animates rotations, a render system draws every mesh
// entity through render.Pipeline, and Config describes the whole scene in
// YAML.
package scene

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Transform places an entity in the world. Rotation holds Euler angles in
// radians, applied X then Y then Z.
type Transform struct {
	Translation math3d.Vec3
	Rotation    math3d.Vec3
	Scale       math3d.Vec3
}

// NewTransform creates an unrotated, unit-scale transform at translation.
func NewTransform(translation math3d.Vec3) Transform {
	return Transform{
		Translation: translation,
		Scale:       math3d.V3(1, 1, 1),
	}
}

// World returns the model-to-world matrix T·Rz·Ry·Rx·S.
func (t Transform) World() math3d.Mat4 {
	return math3d.World(t.Translation, t.Rotation, t.Scale)
}

// MeshRef points an entity at a mesh in the store and gives it a base color.
type MeshRef struct {
	Name  string
	Mesh  *models.Mesh
	Color render.Color
}

// Spin marks an entity for the spin system. Axes scales the shared spin
// angle per axis; NewSpin spins all three axes equally.
type Spin struct {
	Axes math3d.Vec3

	// Offset is an extra rotation added on top of the shared angle. Kicks
	// push it away from zero and a spring pulls it back.
	Offset math3d.Vec3
	vel    math3d.Vec3
}

// NewSpin spins all three axes at the shared rate.
func NewSpin() Spin {
	return Spin{Axes: math3d.V3(1, 1, 1)}
}

// Kick adds angular velocity to the offset.
func (s *Spin) Kick(impulse math3d.Vec3) {
	s.vel = s.vel.Add(impulse)
}

// settle advances the offset one spring step toward zero.
func (s *Spin) settle(spring harmonica.Spring) {
	s.Offset.X, s.vel.X = spring.Update(s.Offset.X, s.vel.X, 0)
	s.Offset.Y, s.vel.Y = spring.Update(s.Offset.Y, s.vel.Y, 0)
	s.Offset.Z, s.vel.Z = spring.Update(s.Offset.Z, s.vel.Z, 0)
}
