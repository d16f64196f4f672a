// Package models holds triangle meshes and the loaders that produce them:
// Wavefront OBJ, glTF/GLB and a few built-in primitives.
//
// All meshes live in the renderer's left-handed space (x right, y up, +z into
// the screen). Loaders for right-handed formats negate z on the way in.
package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Face is a triangle as three indices into Mesh.Vertices.
type Face [3]int

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
	hasBounds bool
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	m.hasBounds = true
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Bounds returns the box computed by the last CalculateBounds, computing it
// first for a mesh that was built by hand and never had one.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if !m.hasBounds {
		m.CalculateBounds()
	}
	return m.BoundsMin, m.BoundsMax
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Face returns the vertex indices of face i.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i]
}

// Validate reports the first face index that does not name a vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if err := CheckFace(i, f, len(m.Vertices)); err != nil {
			return err
		}
	}
	return nil
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit recenters the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Empty or flat-to-a-point meshes are left
// alone.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	largest := max(dims.X, dims.Y, dims.Z)
	if largest == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / largest).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
		hasBounds: m.hasBounds,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// flipHandedness negates z, converting between right- and left-handed
// coordinates. The mirror keeps the on-screen corner order of every face.
func (m *Mesh) flipHandedness() {
	for i := range m.Vertices {
		m.Vertices[i].Z = -m.Vertices[i].Z
	}
}
