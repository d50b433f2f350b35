package canon

import (
	"sync"

	"github.com/2x3systems/tri6/lattice"
	"github.com/2x3systems/tri6/symmetry"
)

// NormalizePosition returns a copy of X translated so that its min a and min b coordinates are both 0, triangles sorted.
func NormalizePosition(X lattice.Shape) lattice.Shape {
	if len(X) == 0 {
		return lattice.Shape{}
	}
	lo, _ := X.Bounds()
	out := make(lattice.Shape, len(X))
	translateInto(out, X, lo)
	out.Sort()
	return out
}

func translateInto(dst, X lattice.Shape, lo lattice.Vertex) {
	d := lattice.Vertex{A: -lo.A, B: -lo.B}
	for i, t := range X {
		dst[i] = t.Translate(d)
	}
}

// Compare orders two sorted shapes lexicographically by triangle (and each triangle by its sorted vertices).
// If one shape is a prefix of the other, the shorter one comes first.
func Compare(A, B lattice.Shape) int {
	N := min(len(A), len(B))
	for i := 0; i < N; i++ {
		if c := A[i].Compare(B[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(A) < len(B):
		return -1
	case len(A) > len(B):
		return 1
	}
	return 0
}

// Equal returns true if the two sorted shapes hold the same triangles.
func Equal(A, B lattice.Shape) bool {
	return Compare(A, B) == 0
}

// Canonicalize returns the canonical form of X: of the 12 images of X under D6, each moved to the origin,
// the one that is least under Compare.
//
// Two shapes are the same polyiamond iff their canonical forms are Equal. The result never shares storage with X.
func Canonicalize(X lattice.Shape) lattice.Shape {
	cz := sCanonizerPool.Get().(*Canonizer)
	Xc, _ := cz.Canonize(X)
	sCanonizerPool.Put(cz)
	return Xc
}

// Symmetries returns the number of D6 elements that map X onto itself (1, 2, 3, 4, 6, or 12).
func Symmetries(X lattice.Shape) int {
	cz := sCanonizerPool.Get().(*Canonizer)
	_, n := cz.Canonize(X)
	sCanonizerPool.Put(cz)
	return n
}

// IsCanonical returns true if X is already its own canonical form.
func IsCanonical(X lattice.Shape) bool {
	return Equal(Canonicalize(X), X)
}

var sCanonizerPool = sync.Pool{
	New: func() any {
		return &Canonizer{}
	},
}

// Canonizer holds scratch space so repeated canonicalization doesn't allocate per group element.
// A Canonizer is not safe for concurrent use; give each worker its own.
type Canonizer struct {
	best    lattice.Shape
	scratch lattice.Shape
}

// Canonize returns the canonical form of X (as a newly allocated Shape) and how many group elements yield it.
func (cz *Canonizer) Canonize(X lattice.Shape) (lattice.Shape, int) {
	N := len(X)
	if N == 0 {
		return lattice.Shape{}, symmetry.GroupOrder
	}
	if cap(cz.best) < N {
		cz.best = make(lattice.Shape, N, N+8)
		cz.scratch = make(lattice.Shape, N, N+8)
	}
	best := cz.best[:N]
	image := cz.scratch[:N]

	hits := 0
	for i, e := range symmetry.Group() {
		lo := symmetry.ApplyInto(image, X, e)
		translateInto(image, image, lo)
		image.Sort()

		c := -1
		if i > 0 {
			c = Compare(image, best)
		}
		if c < 0 {
			best, image = image, best
			hits = 1
		} else if c == 0 {
			hits++
		}
	}

	return best.Clone(), hits
}
