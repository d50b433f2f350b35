package lattice

import (
	"math"
	"slices"
	"strings"
)

// Shape is a set of distinct triangles forming one edge-connected region (a polyiamond).
//
// Shapes are values: growing a shape (With) yields a new Shape and leaves the original untouched.
// Canonical shapes are always sorted (see Sort).
type Shape []Triangle

// Seed returns the single up-pointing triangle at the origin.
func Seed() Shape {
	up, _ := TriangleAt(0, 0)
	return Shape{up}
}

// Len returns the number of triangles in this shape.
func (X Shape) Len() int {
	return len(X)
}

// Contains returns true if t is a member of X.
func (X Shape) Contains(t Triangle) bool {
	for _, ti := range X {
		if ti == t {
			return true
		}
	}
	return false
}

// With returns a new Shape holding X's triangles plus t.
func (X Shape) With(t Triangle) Shape {
	Xt := make(Shape, len(X), len(X)+1)
	copy(Xt, X)
	return append(Xt, t)
}

// Clone returns a copy of X that shares no storage with X.
func (X Shape) Clone() Shape {
	if X == nil {
		return nil
	}
	return append(make(Shape, 0, len(X)), X...)
}

// Sort orders X's triangles ascending (in place).
func (X Shape) Sort() {
	slices.SortFunc(X, Triangle.Compare)
}

// IsSorted returns true if X's triangles are in strictly ascending order (which also implies no duplicates).
func (X Shape) IsSorted() bool {
	for i := 1; i < len(X); i++ {
		if X[i-1].Compare(X[i]) >= 0 {
			return false
		}
	}
	return true
}

// Bounds returns the component-wise min and max vertex coordinates over all of X's vertices.
func (X Shape) Bounds() (lo, hi Vertex) {
	if len(X) == 0 {
		return
	}
	lo = Vertex{math.MaxInt32, math.MaxInt32}
	hi = Vertex{math.MinInt32, math.MinInt32}
	for _, t := range X {
		for _, v := range t {
			lo.A = min(lo.A, v.A)
			lo.B = min(lo.B, v.B)
			hi.A = max(hi.A, v.A)
			hi.B = max(hi.B, v.B)
		}
	}
	return
}

// IsEdgeConnected returns true if every triangle of X can be reached from any other by crossing shared edges.
func (X Shape) IsEdgeConnected() bool {
	if len(X) == 0 {
		return false
	}
	index := make(map[Triangle]int, len(X))
	for i, t := range X {
		index[t] = i
	}
	visited := make([]bool, len(X))
	queue := make([]int, 0, len(X))
	queue = append(queue, 0)
	visited[0] = true
	reached := 1
	for len(queue) > 0 {
		ti := X[queue[0]]
		queue = queue[1:]
		for _, nb := range AdjacentTriangles(ti) {
			j, in := index[nb]
			if in && !visited[j] {
				visited[j] = true
				reached++
				queue = append(queue, j)
			}
		}
	}
	return reached == len(X)
}

func (X Shape) String() string {
	var b strings.Builder
	for i, t := range X {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// CountVerticesEdges returns the number of distinct lattice vertices and distinct unit edges covered by X.
func (X Shape) CountVerticesEdges() (numVerts, numEdges int) {
	verts := make(map[Vertex]struct{}, 2*len(X)+2)
	edges := make(map[[2]Vertex]struct{}, 3*len(X))
	for _, t := range X {
		for _, v := range t {
			verts[v] = struct{}{}
		}
		for _, e := range t.Edges() {
			edges[e] = struct{}{}
		}
	}
	return len(verts), len(edges)
}

// Holes returns the number of bounded empty regions enclosed by X, from Euler's formula (V - E + F = 2).
func (X Shape) Holes() int {
	if len(X) == 0 {
		return 0
	}
	V, E := X.CountVerticesEdges()
	return 1 - V + E - len(X)
}
