package render

import "github.com/taigrr/scanline/pkg/math3d"

// LegacyProjector is the fixed-factor projection that predates the matrix
// pipeline: screen = (x·fov/z, -y·fov/z) + half viewport. It ignores the
// camera entirely and is kept for comparison and the -legacy-fov flag.
type LegacyProjector struct {
	FOV float64 // scale factor in pixels, e.g. 600
}

// Project maps a camera-space point to a pixel on a width x height viewport.
func (l LegacyProjector) Project(p math3d.Vec3, width, height int) math3d.Vec2i {
	s := math3d.ProjectPoint(p, l.FOV)
	return s.Add(math3d.V2(float64(width)/2, float64(height)/2)).Trunc()
}

// ProjectFace projects three camera-space corners.
func (l LegacyProjector) ProjectFace(corners [3]math3d.Vec3, width, height int) Triangle {
	var t Triangle
	for i, c := range corners {
		t[i] = l.Project(c, width, height)
	}
	return t
}
