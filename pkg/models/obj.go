package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex positions ("v") and faces ("f") from r. Every other
// statement is ignored. Face corners may use the v, v/vt, v//vn or v/vt/vn
// forms; only the position index is kept. Indices are 1-based, negative
// indices count back from the latest vertex, and polygons with more than
// three corners are split into a triangle fan.
//
// The file is taken to be right-handed, so z is negated on load.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates, got %d", line, len(fields)-1)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: parse vertex: %w", line, err)
				}
				xyz[i] = f
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(xyz[0], xyz[1], xyz[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners, got %d", line, len(fields)-1)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := objIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, Face{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.flipHandedness()
	mesh.CalculateBounds()
	return mesh, nil
}

// objIndex converts the number before the first slash of a face corner to a
// 0-based vertex index.
func objIndex(tok string, seen int) (int, error) {
	num, _, _ := strings.Cut(tok, "/")
	i, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("parse face index %q: %w", tok, err)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return seen + i, nil
	default:
		return 0, fmt.Errorf("face index %q: OBJ indices start at 1", tok)
	}
}
