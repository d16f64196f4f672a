package math3d

// ProjectPoint is the fixed-factor projection used before the matrix
// pipeline: x and y are scaled by fov/z, and y is flipped so +y points up
// on screen. A z of exactly zero is replaced by PerspectiveEpsilon.
func ProjectPoint(p Vec3, fov float64) Vec2 {
	z := p.Z
	if z == 0 {
		z = PerspectiveEpsilon
	}
	return Vec2{
		X: p.X * fov / z,
		Y: -p.Y * fov / z,
	}
}

// ToViewport maps a perspective-divided point (x, y in [-1, 1]) to pixel
// coordinates: y is flipped, then both axes are scaled and offset by half
// the viewport, and the result is truncated toward zero.
func ToViewport(ndc Vec3, width, height int) Vec2i {
	halfW := float64(width) / 2
	halfH := float64(height) / 2
	return Vec2{
		X: ndc.X*halfW + halfW,
		Y: -ndc.Y*halfH + halfH,
	}.Trunc()
}
