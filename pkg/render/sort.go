package render

import "sort"

// DrawOrder returns the indices of depths sorted by descending key, so the
// farthest face comes first. The order slice is reused when it has room.
//
// This is the painter's algorithm over whole faces: each face is ranked by
// the sum of its corners' camera-space z. Faces that interpenetrate or
// overlap cyclically can still be drawn in the wrong order; no per-pixel
// depth test corrects them. Faces with equal keys have no guaranteed
// relative order.
func DrawOrder(depths []float64, order []int) []int {
	order = order[:0]
	for i := range depths {
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		return depths[order[a]] > depths[order[b]]
	})
	return order
}
