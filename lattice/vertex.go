package lattice

import "math"

// Vertex is a point of the triangular lattice in (a, b) integer coordinates.
//
// The real-plane position is (a + b/2, b·√3/2) but identity and ordering only ever use the integer pair.
type Vertex struct {
	A, B int32
}

const sqrt3_2 = 0.8660254037844386 // √3 / 2

// Add returns v + w
func (v Vertex) Add(w Vertex) Vertex {
	return Vertex{v.A + w.A, v.B + w.B}
}

// Sub returns v - w
func (v Vertex) Sub(w Vertex) Vertex {
	return Vertex{v.A - w.A, v.B - w.B}
}

// Compare orders vertices by A then B, returning -1, 0, or +1.
func (v Vertex) Compare(w Vertex) int {
	switch {
	case v.A < w.A:
		return -1
	case v.A > w.A:
		return 1
	case v.B < w.B:
		return -1
	case v.B > w.B:
		return 1
	}
	return 0
}

// Less is shorthand for v.Compare(w) < 0
func (v Vertex) Less(w Vertex) bool {
	return v.A < w.A || (v.A == w.A && v.B < w.B)
}

// Point returns the real-plane position of this vertex (for plotting / layout only).
func (v Vertex) Point() (x, y float64) {
	x = float64(v.A) + float64(v.B)/2
	y = float64(v.B) * sqrt3_2
	return
}

// Dist returns the real-plane distance between two vertices.
func (v Vertex) Dist(w Vertex) float64 {
	x0, y0 := v.Point()
	x1, y1 := w.Point()
	return math.Hypot(x1-x0, y1-y0)
}
