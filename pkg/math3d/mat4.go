package math3d

import "math"

// Mat4 is a 4x4 matrix stored as four rows.
//
// Vectors are columns: m.MulVec4(v) takes the dot product of each row with v,
// and a.Mul(b) applies b first, then a. A world matrix built as
//
//	Translate(t).Mul(RotateZ(z)).Mul(RotateY(y)).Mul(RotateX(x)).Mul(Scale(s))
//
// scales, rotates about X, Y, Z in that order, then translates.
type Mat4 [4]Vec4

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// World composes translation, rotation (X, then Y, then Z) and scale into a
// single model-to-world matrix.
func World(translation, rotation, scale Vec3) Mat4 {
	return Translate(translation).
		Mul(RotateZ(rotation.Z)).
		Mul(RotateY(rotation.Y)).
		Mul(RotateX(rotation.X)).
		Mul(Scale(scale))
}

// Perspective creates a left-handed perspective projection matrix with
// +z into the screen. fov is the vertical field of view in radians and
// aspect is height/width; it narrows x so square pixels stay square.
//
// The result keeps the camera-space z in w, so PerspectiveDivide performs
// the foreshortening.
func Perspective(fov, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fov/2)
	depth := far / (far - near)

	return Mat4{
		{aspect * f, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, depth, -depth * near},
		{0, 0, 1, 0},
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		r := a[row]
		m[row] = Vec4{
			r.X*b[0].X + r.Y*b[1].X + r.Z*b[2].X + r.W*b[3].X,
			r.X*b[0].Y + r.Y*b[1].Y + r.Z*b[2].Y + r.W*b[3].Y,
			r.X*b[0].Z + r.Y*b[1].Z + r.Z*b[2].Z + r.W*b[3].Z,
			r.X*b[0].W + r.Y*b[1].W + r.Z*b[2].W + r.W*b[3].W,
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0].Dot(v),
		m[1].Dot(v),
		m[2].Dot(v),
		m[3].Dot(v),
	}
}

// MulVec3 transforms a Vec3 as a point (w=1). No divide is performed, so
// this is only meaningful for affine matrices.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(v.Vec4()).Vec3()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0].X, m[1].X, m[2].X, m[3].X},
		{m[0].Y, m[1].Y, m[2].Y, m[3].Y},
		{m[0].Z, m[1].Z, m[2].Z, m[3].Z},
		{m[0].W, m[1].W, m[2].W, m[3].W},
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	r := m[row]
	switch col {
	case 0:
		return r.X
	case 1:
		return r.Y
	case 2:
		return r.Z
	default:
		return r.W
	}
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[0].W, m[1].W, m[2].W}
}
