package lattice

import "fmt"

// Triangle is one unit cell of the triangular lattice, held as its 3 vertices in ascending order.
//
// Since the vertex order is canonical, two Triangles occupying the same cell are always == and hash identically.
type Triangle [3]Vertex

// NewTriangle forms the Triangle having the given corners (in any order).
func NewTriangle(v1, v2, v3 Vertex) Triangle {
	if v2.Less(v1) {
		v1, v2 = v2, v1
	}
	if v3.Less(v2) {
		v2, v3 = v3, v2
		if v2.Less(v1) {
			v1, v2 = v2, v1
		}
	}
	return Triangle{v1, v2, v3}
}

// TriangleAt returns the up-pointing and down-pointing triangles of lattice cell (q, r).
func TriangleAt(q, r int32) (up, down Triangle) {
	up = NewTriangle(Vertex{q, r}, Vertex{q + 1, r}, Vertex{q, r + 1})
	down = NewTriangle(Vertex{q, r + 1}, Vertex{q + 1, r}, Vertex{q + 1, r + 1})
	return
}

// CellTriangle is the inverse of Triangle.Cell()
func CellTriangle(q, r int32, isUp bool) Triangle {
	up, down := TriangleAt(q, r)
	if isUp {
		return up
	}
	return down
}

// IsUp returns true if two of this triangle's vertices share the lower b value.
func (t Triangle) IsUp() bool {
	b0, b1, b2 := t[0].B, t[1].B, t[2].B
	lo := min(b0, b1, b2)
	n := 0
	for _, b := range [3]int32{b0, b1, b2} {
		if b == lo {
			n++
		}
	}
	return n == 2
}

// Cell returns the lattice cell (q, r) this triangle occupies and whether it is the up or down half.
func (t Triangle) Cell() (q, r int32, isUp bool) {
	isUp = t.IsUp()
	if isUp {
		// bottom-left vertex
		lo := t[0]
		for _, v := range t[1:] {
			if v.B < lo.B || (v.B == lo.B && v.A < lo.A) {
				lo = v
			}
		}
		return lo.A, lo.B, true
	}

	// top-left vertex sits at (q, r+1)
	hiB := max(t[0].B, t[1].B, t[2].B)
	q = int32(0)
	found := false
	for _, v := range t {
		if v.B == hiB && (!found || v.A < q) {
			q = v.A
			found = true
		}
	}
	return q, hiB - 1, false
}

// Compare orders triangles element-wise by their sorted vertices.
func (t Triangle) Compare(u Triangle) int {
	for i := range t {
		if c := t[i].Compare(u[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Translate returns this triangle offset by d.
func (t Triangle) Translate(d Vertex) Triangle {
	return Triangle{t[0].Add(d), t[1].Add(d), t[2].Add(d)}
}

// Edges returns the 3 edges of this triangle, each with its endpoints in ascending order.
func (t Triangle) Edges() [3][2]Vertex {
	return [3][2]Vertex{
		{t[0], t[1]},
		{t[0], t[2]},
		{t[1], t[2]},
	}
}

// SharedEdges returns the number of edges t and u have in common (0 or 1 for distinct cells, 3 if t == u).
func (t Triangle) SharedEdges(u Triangle) int {
	shared := 0
	for _, v := range t {
		if v == u[0] || v == u[1] || v == u[2] {
			shared++
		}
	}
	switch shared {
	case 2:
		return 1
	case 3:
		return 3
	}
	return 0
}

func (t Triangle) String() string {
	q, r, isUp := t.Cell()
	dir := 'v'
	if isUp {
		dir = '^'
	}
	return fmt.Sprintf("%c(%d,%d)", dir, q, r)
}

// AdjacentTriangles returns the 3 triangles that share an edge with t.
//
// For edge (v1, v2) with opposite corner v3, the neighbor's far corner completes the parallelogram: v1 + v2 - v3.
func AdjacentTriangles(t Triangle) [3]Triangle {
	var nbrs [3]Triangle
	for i := 0; i < 3; i++ {
		v1, v2, v3 := t[i], t[(i+1)%3], t[(i+2)%3]
		v4 := v1.Add(v2).Sub(v3)
		nbrs[i] = NewTriangle(v1, v2, v4)
	}
	return nbrs
}
