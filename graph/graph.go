package graph

import (
	"slices"

	"github.com/2x3systems/tri6/lattice"
)

// Edge joins two vertices of a Graph, given as indices into Graph.Vertices with Lo < Hi.
type Edge struct {
	Lo, Hi int
}

func compareEdges(a, b Edge) int {
	if a.Lo != b.Lo {
		return a.Lo - b.Lo
	}
	return a.Hi - b.Hi
}

// Graph is the vertex-edge skeleton of a shape: every lattice vertex and unit edge its triangles cover.
type Graph struct {
	Vertices []lattice.Vertex // ascending
	Edges    []Edge           // ascending, no duplicates
}

// ToGraph extracts the vertex-edge graph of X.
//
// Vertex indices follow ascending vertex order, so equal shapes always yield identical graphs.
func ToGraph(X lattice.Shape) *Graph {
	index := make(map[lattice.Vertex]int, 2*len(X)+2)
	for _, t := range X {
		for _, v := range t {
			index[v] = 0
		}
	}

	g := &Graph{
		Vertices: make([]lattice.Vertex, 0, len(index)),
	}
	for v := range index {
		g.Vertices = append(g.Vertices, v)
	}
	slices.SortFunc(g.Vertices, lattice.Vertex.Compare)
	for i, v := range g.Vertices {
		index[v] = i
	}

	seen := make(map[Edge]struct{}, 3*len(X))
	g.Edges = make([]Edge, 0, 3*len(X)/2+2)
	for _, t := range X {
		for _, ends := range t.Edges() {
			e := Edge{index[ends[0]], index[ends[1]]}
			if e.Lo > e.Hi {
				e.Lo, e.Hi = e.Hi, e.Lo
			}
			if _, dupe := seen[e]; !dupe {
				seen[e] = struct{}{}
				g.Edges = append(g.Edges, e)
			}
		}
	}
	slices.SortFunc(g.Edges, compareEdges)
	return g
}

func (g *Graph) NumVertices() int {
	return len(g.Vertices)
}

func (g *Graph) NumEdges() int {
	return len(g.Edges)
}

// AdjacencyIndex returns, for each vertex, the ascending indices of its neighbors.
func (g *Graph) AdjacencyIndex() [][]int {
	adj := make([][]int, len(g.Vertices))
	for _, e := range g.Edges {
		adj[e.Lo] = append(adj[e.Lo], e.Hi)
		adj[e.Hi] = append(adj[e.Hi], e.Lo)
	}
	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}
	return adj
}

// Degree returns the number of edges meeting vertex i.
func (g *Graph) Degree(i int) int {
	deg := 0
	for _, e := range g.Edges {
		if e.Lo == i || e.Hi == i {
			deg++
		}
	}
	return deg
}

// IsConnected returns true if every vertex is reachable from vertex 0.  A graph with no vertices is not connected.
func (g *Graph) IsConnected() bool {
	Nv := len(g.Vertices)
	if Nv == 0 {
		return false
	}
	adj := g.AdjacencyIndex()
	visited := make([]bool, Nv)
	visited[0] = true
	queue := []int{0}
	reached := 1
	for len(queue) > 0 {
		vi := queue[0]
		queue = queue[1:]
		for _, vj := range adj[vi] {
			if !visited[vj] {
				visited[vj] = true
				reached++
				queue = append(queue, vj)
			}
		}
	}
	return reached == Nv
}
