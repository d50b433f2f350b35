package graph

import (
	"strings"
	"testing"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/lattice"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

var (
	seed    = lattice.Seed()
	diamond = lattice.Shape{lattice.CellTriangle(0, 0, true), lattice.CellTriangle(0, 0, false)}
	bigTri  = lattice.Shape{
		lattice.CellTriangle(0, 0, true), lattice.CellTriangle(0, 0, false),
		lattice.CellTriangle(1, 0, true), lattice.CellTriangle(0, 1, true),
	}
)

func TestToGraph(t *testing.T) {
	g := ToGraph(diamond)
	wantVerts := []lattice.Vertex{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if diff := cmp.Diff(wantVerts, g.Vertices); diff != "" {
		t.Fatalf("vertices (-want +got):\n%s", diff)
	}
	wantEdges := []Edge{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("edges (-want +got):\n%s", diff)
	}
	if g.Degree(1) != 3 || g.Degree(3) != 2 {
		t.Fatalf("degrees: %d %d", g.Degree(1), g.Degree(3))
	}
	if !g.IsConnected() {
		t.Fatal("diamond graph should be connected")
	}

	big := ToGraph(bigTri)
	if big.NumVertices() != 6 || big.NumEdges() != 9 {
		t.Fatalf("side-2 triangle: V=%d E=%d", big.NumVertices(), big.NumEdges())
	}
	for _, e := range big.Edges {
		if e.Lo >= e.Hi {
			t.Fatalf("edge %v is not ordered", e)
		}
	}
}

func TestIsConnected(t *testing.T) {
	g := &Graph{
		Vertices: []lattice.Vertex{{0, 0}, {1, 0}, {5, 5}},
		Edges:    []Edge{{0, 1}},
	}
	if g.IsConnected() {
		t.Fatal("graph with an isolated vertex reported connected")
	}
	if (&Graph{}).IsConnected() {
		t.Fatal("empty graph reported connected")
	}
}

func TestGraph6(t *testing.T) {
	if got := EncodeGraph6(ToGraph(seed)); got != "Bw" {
		t.Fatalf("K3 encodes as %q, want \"Bw\"", got)
	}

	for _, X := range []lattice.Shape{seed, diamond, bigTri} {
		g := ToGraph(X)
		g6 := EncodeGraph6(g)
		n, edges, err := DecodeGraph6(g6)
		if err != nil {
			t.Fatal(err)
		}
		if n != g.NumVertices() {
			t.Fatalf("%q decoded %d vertices, want %d", g6, n, g.NumVertices())
		}
		got := &Graph{Vertices: g.Vertices}
		for _, e := range edges {
			got.Edges = append(got.Edges, Edge{e[0], e[1]})
		}
		if diff := cmp.Diff(g, got, cmp.Transformer("sortEdges", sortedEdges)); diff != "" {
			t.Fatalf("%q round trip (-want +got):\n%s", g6, diff)
		}
	}

	big, err := AppendGraph6(nil, 70, [][2]int{{0, 69}})
	if err != nil {
		t.Fatal(err)
	}
	n, edges, err := DecodeGraph6(string(big))
	if err != nil || n != 70 || len(edges) != 1 || edges[0] != [2]int{0, 69} {
		t.Fatalf("large graph round trip: n=%d edges=%v err=%v", n, edges, err)
	}
}

func TestGraph6Order(t *testing.T) {
	prefix := []byte("keep")
	for _, n := range []int{-1, MaxGraph6Order + 1} {
		dst, err := AppendGraph6(prefix, n, nil)
		if !errors.Is(err, tri6.ErrBadGraph6) {
			t.Fatalf("order %d: got err %v, want ErrBadGraph6", n, err)
		}
		if string(dst) != "keep" {
			t.Fatalf("order %d: dst changed to %q", n, dst)
		}
	}

	// 63 is the first order written with the 4-byte size header
	header, err := AppendGraph6(nil, 63, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{126, 63, 63, 126}; string(header[:4]) != string(want) {
		t.Fatalf("order 63 has header %v, want %v", header[:4], want)
	}
}

func sortedEdges(edges []Edge) map[Edge]bool {
	set := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		set[e] = true
	}
	return set
}

func TestDecodeGraph6Errors(t *testing.T) {
	for _, bad := range []string{"", "B", "Bww", "B\x01", "~~"} {
		if _, _, err := DecodeGraph6(bad); !errors.Is(err, tri6.ErrBadGraph6) {
			t.Errorf("DecodeGraph6(%q): got %v, want ErrBadGraph6", bad, err)
		}
	}
}

func TestEdgeCounts(t *testing.T) {
	h := EdgeCounts([]lattice.Shape{bigTri, seed, diamond, bigTri})
	if h.Total() != 4 || h.Get(9) != 2 || h.Get(3) != 1 || h.Get(4) != 0 {
		t.Fatalf("histogram: %v", h)
	}
	if got := h.String(); got != "3:1, 5:1, 9:2" {
		t.Fatalf("histogram String() = %q", got)
	}
}

func TestCoordsWriter(t *testing.T) {
	var out strings.Builder
	cw := NewCoordsWriter(&out)
	for _, X := range []lattice.Shape{seed, diamond, seed} {
		if _, err := cw.Write(ToGraph(X)); err != nil {
			t.Fatal(err)
		}
	}
	if cw.Count() != 2 {
		t.Fatalf("wrote %d graphs, want 2", cw.Count())
	}
	want := "GRAPH 1\nVERTICES 3\n0 0\n0 1\n1 0\nEDGES 3\n0 1\n0 2\n1 2\n"
	if !strings.HasPrefix(out.String(), want) {
		t.Fatalf("coords output:\n%s", out.String())
	}
	if strings.Count(out.String(), "GRAPH") != 2 {
		t.Fatalf("duplicate graph written:\n%s", out.String())
	}
}
