package lattice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTriangleAt(t *testing.T) {
	up, down := TriangleAt(0, 0)

	wantUp := Triangle{{0, 0}, {0, 1}, {1, 0}}
	if diff := cmp.Diff(wantUp, up); diff != "" {
		t.Fatalf("up triangle (-want +got):\n%s", diff)
	}
	wantDown := Triangle{{0, 1}, {1, 0}, {1, 1}}
	if diff := cmp.Diff(wantDown, down); diff != "" {
		t.Fatalf("down triangle (-want +got):\n%s", diff)
	}
	if !up.IsUp() || down.IsUp() {
		t.Fatal("orientation mismatch")
	}

	for q := int32(-3); q <= 3; q++ {
		for r := int32(-3); r <= 3; r++ {
			up, down := TriangleAt(q, r)
			for _, isUp := range []bool{true, false} {
				tri := down
				if isUp {
					tri = up
				}
				gq, gr, gUp := tri.Cell()
				if gq != q || gr != r || gUp != isUp {
					t.Fatalf("Cell() of %v: got (%d,%d,%v) want (%d,%d,%v)", tri, gq, gr, gUp, q, r, isUp)
				}
				if CellTriangle(q, r, isUp) != tri {
					t.Fatalf("CellTriangle(%d,%d,%v) mismatch", q, r, isUp)
				}
			}
		}
	}
}

func TestNewTriangleOrder(t *testing.T) {
	a, b, c := Vertex{2, -1}, Vertex{1, 0}, Vertex{2, 0}
	want := NewTriangle(a, b, c)
	perms := [][3]Vertex{
		{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		if got := NewTriangle(p[0], p[1], p[2]); got != want {
			t.Errorf("NewTriangle(%v) = %v, want %v", p, got, want)
		}
	}

	set := map[Triangle]int{}
	set[NewTriangle(a, b, c)]++
	set[NewTriangle(c, b, a)]++
	if len(set) != 1 {
		t.Fatalf("equal triangles hashed apart: %v", set)
	}
}

func TestAdjacentTriangles(t *testing.T) {
	for q := int32(-2); q <= 2; q++ {
		for r := int32(-2); r <= 2; r++ {
			up, down := TriangleAt(q, r)
			for _, tri := range []Triangle{up, down} {
				nbrs := AdjacentTriangles(tri)
				for _, nb := range nbrs {
					if nb.IsUp() == tri.IsUp() {
						t.Fatalf("neighbor %v of %v has the same orientation", nb, tri)
					}
					if n := tri.SharedEdges(nb); n != 1 {
						t.Fatalf("neighbor %v of %v shares %d edges", nb, tri, n)
					}
					back := AdjacentTriangles(nb)
					if back[0] != tri && back[1] != tri && back[2] != tri {
						t.Fatalf("adjacency of %v and %v is not symmetric", tri, nb)
					}
				}
				if nbrs[0] == nbrs[1] || nbrs[1] == nbrs[2] || nbrs[0] == nbrs[2] {
					t.Fatalf("duplicate neighbors for %v: %v", tri, nbrs)
				}
			}
		}
	}
}

func TestBoundary(t *testing.T) {
	seed := Seed()
	border := Boundary(seed)
	if len(border) != 3 {
		t.Fatalf("single triangle boundary: got %d triangles, want 3", len(border))
	}
	for _, b := range border {
		if n := seed[0].SharedEdges(b); n != 1 {
			t.Errorf("boundary triangle %v shares %d edges with the seed", b, n)
		}
		if seed.Contains(b) {
			t.Errorf("boundary contains member %v", b)
		}
	}

	up, down := TriangleAt(0, 0)
	diamond := Shape{up, down}
	border = Boundary(diamond)
	want := []Triangle{
		CellTriangle(0, -1, false),
		CellTriangle(-1, 0, false),
		CellTriangle(0, 1, true),
		CellTriangle(1, 0, true),
	}
	Shape(border).Sort()
	Shape(want).Sort()
	if diff := cmp.Diff(want, border); diff != "" {
		t.Fatalf("diamond boundary (-want +got):\n%s", diff)
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	X := Seed()
	_, down := TriangleAt(0, 0)
	Y := X.With(down)
	if len(X) != 1 || len(Y) != 2 {
		t.Fatalf("With mutated its receiver: len(X)=%d len(Y)=%d", len(X), len(Y))
	}
	Y[0] = down
	if X[0] == down {
		t.Fatal("With shares storage with its receiver")
	}
}

func TestIsEdgeConnected(t *testing.T) {
	up0, down0 := TriangleAt(0, 0)
	up1, _ := TriangleAt(1, 0)

	if !(Shape{up0, down0, up1}).IsEdgeConnected() {
		t.Error("strip of 3 should be edge-connected")
	}
	if (Shape{up0, up1}).IsEdgeConnected() {
		t.Error("corner-touching triangles should not be edge-connected")
	}
	if (Shape{}).IsEdgeConnected() {
		t.Error("empty shape should not be edge-connected")
	}
}

func TestVertexPoint(t *testing.T) {
	x, y := Vertex{1, 2}.Point()
	if x != 2 || y < 1.732 || y > 1.7321 {
		t.Fatalf("Point() = (%v, %v)", x, y)
	}
	if d := (Vertex{0, 0}).Dist(Vertex{0, 1}); d < 0.9999 || d > 1.0001 {
		t.Fatalf("unit edge has length %v", d)
	}
}

func TestCountVerticesEdges(t *testing.T) {
	// side-2 triangle: 4 cells, 6 vertices, 9 edges
	X := Shape{
		CellTriangle(0, 0, true), CellTriangle(0, 0, false),
		CellTriangle(1, 0, true), CellTriangle(0, 1, true),
	}
	V, E := X.CountVerticesEdges()
	if V != 6 || E != 9 {
		t.Fatalf("side-2 triangle: V=%d E=%d, want 6 and 9", V, E)
	}
	if X.Holes() != 0 {
		t.Fatalf("side-2 triangle has %d holes", X.Holes())
	}

	// every cell touching the origin's up triangle, less that triangle, encloses it
	hole := CellTriangle(0, 0, true)
	var ring Shape
	for q := int32(-2); q <= 2; q++ {
		for r := int32(-2); r <= 2; r++ {
			up, down := TriangleAt(q, r)
			for _, tri := range []Triangle{up, down} {
				if tri == hole {
					continue
				}
				touches := false
				for _, v := range tri {
					touches = touches || v == hole[0] || v == hole[1] || v == hole[2]
				}
				if touches {
					ring = append(ring, tri)
				}
			}
		}
	}
	if len(ring) != 12 || !ring.IsEdgeConnected() {
		t.Fatalf("ring has %d triangles (connected=%v)", len(ring), ring.IsEdgeConnected())
	}
	if h := ring.Holes(); h != 1 {
		t.Fatalf("ring.Holes() = %d, want 1", h)
	}
}
