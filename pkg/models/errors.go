package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for mesh files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	// ErrAssetsNotFound is returned when no assets directory exists above the
	// start directory.
	ErrAssetsNotFound = errors.New("assets directory not found")
	// ErrDuplicateMesh is returned when a mesh name is registered twice.
	ErrDuplicateMesh = errors.New("duplicate mesh name")
	// ErrMeshNotFound is returned for lookups of unregistered names.
	ErrMeshNotFound = errors.New("mesh not found")
)

// IndexError reports a face corner that points past the vertex list.
type IndexError struct {
	Face        int // face number
	Corner      int // 0, 1 or 2
	Index       int // offending vertex index
	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face %d corner %d: vertex index %d out of range [0, %d)",
		e.Face, e.Corner, e.Index, e.VertexCount)
}

// CheckFace returns an *IndexError if any index of face is outside
// [0, vertexCount).
func CheckFace(face int, idx [3]int, vertexCount int) error {
	for corner, i := range idx {
		if i < 0 || i >= vertexCount {
			return &IndexError{Face: face, Corner: corner, Index: i, VertexCount: vertexCount}
		}
	}
	return nil
}
