package walker

import (
	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/lattice"
)

// EnumShapes is the primary entry point for polyiamond enumeration.
//
// It streams every distinct shape of size opts.SizeMin..opts.SizeMax (in canonical form), size by size and
// ascending within each size.  A failure during growth is recorded on the returned stream (see ShapeStream.Err).
func EnumShapes(opts tri6.EnumOpts) (*tri6.ShapeStream, error) {
	return enumShapes(opts)
}

// Enumerate returns every distinct polyiamond having n triangles, each in canonical form, sorted ascending.
//
// n < 1 yields no shapes and no error.
func Enumerate(n int) ([]lattice.Shape, error) {
	gens, err := Run(tri6.EnumOpts{
		SizeMin: n,
		SizeMax: n,
	})
	if err != nil || len(gens) == 0 {
		return nil, err
	}
	return gens[len(gens)-1].Shapes, nil
}

// EnumerateAll returns the generations of size 1 through n.
func EnumerateAll(n int) ([]*Generation, error) {
	return Run(tri6.EnumOpts{
		SizeMin: 1,
		SizeMax: n,
		KeepAll: true,
	})
}

// Generation is the complete set of distinct shapes of a single size.
//
// A Generation is never modified once formed; Grow produces the next one.
type Generation struct {
	Size   int             // triangles per shape
	Shapes []lattice.Shape // canonical shapes, ascending by canon.Compare
}

// Len returns the number of shapes in this generation.
func (gen *Generation) Len() int {
	return len(gen.Shapes)
}
