package graph

import (
	"fmt"
	"strings"

	"github.com/2x3systems/tri6/lattice"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Histogram tallies how many shapes have each edge (or vertex) count, ascending by count.
type Histogram struct {
	tree  *redblacktree.Tree
	total int64
}

func NewHistogram() *Histogram {
	return &Histogram{
		tree: redblacktree.NewWithIntComparator(),
	}
}

// Add tallies one more shape having the given count.
func (h *Histogram) Add(count int) {
	n := int64(0)
	if prev, found := h.tree.Get(count); found {
		n = prev.(int64)
	}
	h.tree.Put(count, n+1)
	h.total++
}

// Get returns how many shapes were tallied for the given count.
func (h *Histogram) Get(count int) int64 {
	if n, found := h.tree.Get(count); found {
		return n.(int64)
	}
	return 0
}

// Total returns how many shapes were tallied.
func (h *Histogram) Total() int64 {
	return h.total
}

// Each calls fn for every tallied count, ascending.
func (h *Histogram) Each(fn func(count int, shapes int64)) {
	itr := h.tree.Iterator()
	for itr.Next() {
		fn(itr.Key().(int), itr.Value().(int64))
	}
}

func (h *Histogram) String() string {
	var b strings.Builder
	h.Each(func(count int, shapes int64) {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%d", count, shapes)
	})
	return b.String()
}

// EdgeCounts tallies the edge count of each shape.
func EdgeCounts(shapes []lattice.Shape) *Histogram {
	h := NewHistogram()
	for _, X := range shapes {
		_, E := X.CountVerticesEdges()
		h.Add(E)
	}
	return h
}
