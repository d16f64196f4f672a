package models

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Cube returns a cube of side 2 centered on the origin: 8 vertices,
// 12 triangles.
func Cube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = []math3d.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: 1},
	}
	m.Faces = []Face{
		{0, 1, 2}, {0, 2, 3}, // front (-z)
		{3, 2, 4}, {3, 4, 5}, // right
		{5, 4, 6}, {5, 6, 7}, // back
		{7, 6, 1}, {7, 1, 0}, // left
		{1, 6, 4}, {1, 4, 2}, // top
		{5, 7, 0}, {5, 0, 3}, // bottom
	}
	orientOutward(m)
	m.CalculateBounds()
	return m
}

// Icosphere returns a unit sphere built by subdividing an icosahedron.
// Level 0 has 12 vertices and 20 faces; each level quadruples the faces.
func Icosphere(subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2

	m := NewMesh("icosphere")
	for _, v := range []math3d.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	} {
		m.Vertices = append(m.Vertices, v.Normalize())
	}
	m.Faces = []Face{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for range max(subdivisions, 0) {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := midpoints[key]; ok {
				return i
			}
			p := m.Vertices[a].Add(m.Vertices[b]).Scale(0.5).Normalize()
			m.Vertices = append(m.Vertices, p)
			midpoints[key] = len(m.Vertices) - 1
			return len(m.Vertices) - 1
		}

		faces := make([]Face, 0, len(m.Faces)*4)
		for _, f := range m.Faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			faces = append(faces,
				Face{f[0], ab, ca},
				Face{f[1], bc, ab},
				Face{f[2], ca, bc},
				Face{ab, bc, ca},
			)
		}
		m.Faces = faces
	}

	orientOutward(m)
	m.CalculateBounds()
	return m
}

// OutwardNormal is the front-face normal of a face with clockwise on-screen
// winding in left-handed space: cross(c2-c0, c1-c0).
func OutwardNormal(c0, c1, c2 math3d.Vec3) math3d.Vec3 {
	return c2.Sub(c0).Cross(c1.Sub(c0))
}

// orientOutward reorders the corners of every face of a convex mesh
// centered on the origin so that OutwardNormal points away from the center.
func orientOutward(m *Mesh) {
	for i, f := range m.Faces {
		c0, c1, c2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		centroid := c0.Add(c1).Add(c2)
		if OutwardNormal(c0, c1, c2).Dot(centroid) < 0 {
			m.Faces[i] = Face{f[0], f[2], f[1]}
		}
	}
}
