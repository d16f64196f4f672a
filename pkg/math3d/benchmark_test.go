package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkWorld(b *testing.B) {
	t := V3(-2, -2, 5)
	r := V3(0.3, 0.6, 0.9)
	s := V3(1.2, 2, 1.2)

	for b.Loop() {
		_ = World(t, r, s)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkPerspective(b *testing.B) {
	for b.Loop() {
		_ = Perspective(1.047, 0.75, 0.1, 10.0)
	}
}

func BenchmarkProjectCorner(b *testing.B) {
	// One corner through projection, divide and viewport like the pipeline.
	proj := Perspective(1.047, 0.75, 0.1, 10.0)
	v := V3(1, 2, 5)

	for b.Loop() {
		ndc := proj.MulVec4(v.Vec4()).PerspectiveDivide()
		_ = ToViewport(ndc, 800, 600)
	}
}
