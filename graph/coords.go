package graph

import (
	"bufio"
	"fmt"
	"io"
)

// CoordsWriter writes vertex coordinates and edge lists for plotting, skipping graphs already written.
type CoordsWriter struct {
	out   *bufio.Writer
	seen  map[string]struct{}
	count int
}

func NewCoordsWriter(out io.Writer) *CoordsWriter {
	return &CoordsWriter{
		out:  bufio.NewWriter(out),
		seen: make(map[string]struct{}),
	}
}

// Write emits g unless an identical graph (same vertex count and edges) was already written.
func (cw *CoordsWriter) Write(g *Graph) (bool, error) {
	sig := EncodeGraph6(g)
	if _, dupe := cw.seen[sig]; dupe {
		return false, nil
	}
	cw.seen[sig] = struct{}{}
	cw.count++

	out := cw.out
	fmt.Fprintf(out, "GRAPH %d\n", cw.count)
	fmt.Fprintf(out, "VERTICES %d\n", len(g.Vertices))
	for _, v := range g.Vertices {
		fmt.Fprintf(out, "%d %d\n", v.A, v.B)
	}
	fmt.Fprintf(out, "EDGES %d\n", len(g.Edges))
	for _, e := range g.Edges {
		fmt.Fprintf(out, "%d %d\n", e.Lo, e.Hi)
	}
	return true, out.Flush()
}

// Count returns the number of graphs written.
func (cw *CoordsWriter) Count() int {
	return cw.count
}
