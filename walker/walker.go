package walker

import (
	"slices"
	"sync"
	"time"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/lattice"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Seed returns the generation of size 1: the single up triangle at the origin, canonicalized.
func Seed() *Generation {
	return &Generation{
		Size:   1,
		Shapes: []lattice.Shape{canon.Canonicalize(lattice.Seed())},
	}
}

// Grow forms the generation of size gen.Size+1 from gen.
//
// Every shape of gen is extended by each triangle of its boundary, then canonicalized and deduplicated.
// When workers > 1, gen's shapes are split across that many goroutines, each filling its own partial set,
// and the partial sets are merged once all have finished.  The result is the same for any worker count.
func Grow(gen *Generation, workers int) (*Generation, error) {
	if gen == nil || len(gen.Shapes) == 0 {
		return nil, errors.Wrap(tri6.ErrEmptyGeneration, "nothing to grow from")
	}

	N := len(gen.Shapes)
	workers = max(1, min(workers, N))
	nextSize := gen.Size + 1

	partials := make([]map[string]lattice.Shape, workers)
	errs := make([]error, workers)

	if workers == 1 {
		partials[0], errs[0] = growShapes(gen.Shapes, 0, 1, nextSize)
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				partials[w], errs[w] = growShapes(gen.Shapes, w, workers, nextSize)
			}(w)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := partials[0]
	for _, partial := range partials[1:] {
		for key, X := range partial {
			if _, exists := merged[key]; !exists {
				merged[key] = X
			}
		}
	}
	if len(merged) == 0 {
		return nil, errors.Wrapf(tri6.ErrEmptyGeneration, "size %d", nextSize)
	}

	next := &Generation{
		Size:   nextSize,
		Shapes: make([]lattice.Shape, 0, len(merged)),
	}
	for _, X := range merged {
		next.Shapes = append(next.Shapes, X)
	}
	slices.SortFunc(next.Shapes, canon.Compare)
	return next, nil
}

// growShapes extends shapes[start], shapes[start+stride], ... by one triangle each way possible.
func growShapes(shapes []lattice.Shape, start, stride, nextSize int) (map[string]lattice.Shape, error) {
	var (
		cz     canon.Canonizer
		keyBuf canon.KeyBuf
	)
	grown := make(map[string]lattice.Shape, 3*len(shapes)/stride+1)

	for i := start; i < len(shapes); i += stride {
		S := shapes[i]
		for _, t := range lattice.Boundary(S) {
			Xc, _ := cz.Canonize(S.With(t))
			if len(Xc) != nextSize {
				return nil, errors.Wrapf(tri6.ErrOutOfGroup, "%v plus %v canonized to size %d", S, t, len(Xc))
			}
			key := canon.AppendKey(keyBuf[:0], Xc)
			if _, exists := grown[string(key)]; !exists {
				grown[string(key)] = Xc
			}
		}
	}
	return grown, nil
}

// Verify checks that every shape of gen is an edge-connected canonical fixed point of the right size,
// and that no two shapes are equal.
func (gen *Generation) Verify() error {
	if len(gen.Shapes) == 0 {
		return errors.Wrapf(tri6.ErrEmptyGeneration, "size %d", gen.Size)
	}
	var cz canon.Canonizer
	for i, X := range gen.Shapes {
		if len(X) != gen.Size {
			return errors.Wrapf(tri6.ErrOutOfGroup, "shape %v has size %d in generation %d", X, len(X), gen.Size)
		}
		if Xc, _ := cz.Canonize(X); !canon.Equal(Xc, X) {
			return errors.Wrapf(tri6.ErrOutOfGroup, "shape %v is not canonical", X)
		}
		if !X.IsEdgeConnected() {
			return errors.Wrapf(tri6.ErrOutOfGroup, "shape %v is not edge-connected", X)
		}
		if i > 0 && canon.Compare(gen.Shapes[i-1], X) >= 0 {
			return errors.Wrapf(tri6.ErrOutOfGroup, "shapes %d and %d are duplicate or out of order", i-1, i)
		}
	}
	return nil
}

// Run grows generations up to opts.SizeMax.
//
// If opts.KeepAll is set, generations opts.SizeMin..opts.SizeMax are returned, otherwise only the last.
// A SizeMax < 1 yields no generations and no error.
func Run(opts tri6.EnumOpts) ([]*Generation, error) {
	var gens []*Generation
	err := walk(opts, func(gen *Generation) error {
		if opts.KeepAll || gen.Size == opts.SizeMax {
			gens = append(gens, gen)
		}
		return nil
	})
	return gens, err
}

// walk grows generations 1..opts.SizeMax, calling onGen for each generation in opts.SizeMin..opts.SizeMax.
func walk(opts tri6.EnumOpts, onGen func(gen *Generation) error) error {
	if opts.SizeMax < 1 {
		return nil
	}
	sizeMin := max(opts.SizeMin, 1)

	gen := Seed()
	for {
		if opts.Verify {
			if err := gen.Verify(); err != nil {
				return err
			}
			if known, ok := tri6.KnownCount(gen.Size); ok && known != int64(gen.Len()) {
				klog.Warningf("size %d: found %d shapes, expected %d", gen.Size, gen.Len(), known)
			}
		}
		if gen.Size >= sizeMin {
			if err := onGen(gen); err != nil {
				return err
			}
		}
		if gen.Size >= opts.SizeMax {
			return nil
		}

		start := time.Now()
		next, err := Grow(gen, opts.Workers)
		if err != nil {
			return err
		}
		klog.V(2).Infof("size %2d: %9d shapes  (%v)", next.Size, next.Len(), time.Since(start).Round(time.Millisecond))
		gen = next
	}
}

func enumShapes(opts tri6.EnumOpts) (*tri6.ShapeStream, error) {
	if opts.SizeMax > tri6.MaxSize {
		return nil, errors.Wrapf(tri6.ErrBadConfig, "size %d exceeds %d", opts.SizeMax, tri6.MaxSize)
	}
	if opts.SizeMin > opts.SizeMax && opts.SizeMax > 0 {
		return nil, errors.Wrapf(tri6.ErrBadConfig, "min size %d exceeds max size %d", opts.SizeMin, opts.SizeMax)
	}

	stream := tri6.NewShapeStream()
	go func() {
		err := walk(opts, func(gen *Generation) error {
			for _, X := range gen.Shapes {
				stream.Outlet <- X
			}
			return nil
		})
		if err != nil {
			stream.Fail(err)
		}
		stream.Close()
	}()

	return stream, nil
}
