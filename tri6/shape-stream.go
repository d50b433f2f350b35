package tri6

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/lattice"
	"github.com/pkg/errors"
)

// ShapeStream is one stage of a shape pipeline.
//
// Each stage runs in its own goroutine and closes its Outlet once its input closes.
// All stages chained from the same source share an error status, readable via Err() once the stream is drained.
type ShapeStream struct {
	Outlet chan lattice.Shape
	status *streamStatus
}

type streamStatus struct {
	mu  sync.Mutex
	err error
}

func NewShapeStream() *ShapeStream {
	stream := &ShapeStream{
		Outlet: make(chan lattice.Shape),
		status: &streamStatus{},
	}
	return stream
}

// StreamShapes returns a stream that emits copies of the given shapes then closes.
func StreamShapes(shapes ...lattice.Shape) *ShapeStream {
	next := NewShapeStream()

	go func() {
		for _, X := range shapes {
			next.Outlet <- X.Clone()
		}
		next.Close()
	}()

	return next
}

// next returns a new stage sharing this stream's error status.
func (stream *ShapeStream) next() *ShapeStream {
	return &ShapeStream{
		Outlet: make(chan lattice.Shape, 1),
		status: stream.status,
	}
}

func (stream *ShapeStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Fail records err as this stream's error (only the first error is kept).
func (stream *ShapeStream) Fail(err error) {
	st := stream.status
	st.mu.Lock()
	if st.err == nil {
		st.err = err
	}
	st.mu.Unlock()
}

// Err returns the first error recorded by any stage of this stream.
func (stream *ShapeStream) Err() error {
	st := stream.status
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.err
}

func (stream *ShapeStream) PushShape(X lattice.Shape) {
	stream.Outlet <- X.Clone()
}

func (stream *ShapeStream) PullShape() lattice.Shape {
	X := <-stream.Outlet
	return X
}

// PullAll drains this stream and returns the number of shapes received.
func (stream *ShapeStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains this stream and returns every shape received, in order.
func (stream *ShapeStream) Collect() []lattice.Shape {
	var shapes []lattice.Shape
	for X := range stream.Outlet {
		shapes = append(shapes, X)
	}
	return shapes
}

// WriteShape writes one shape according to opts (without the label or sequence prefix).
func WriteShape(out io.Writer, X lattice.Shape, opts PrintOpts) {
	if opts.Expr {
		io.WriteString(out, X.String())
	}
	if opts.Info {
		info := GetInfo(X)
		fmt.Fprintf(out, ",n=%d,v=%d,e=%d,holes=%d,sym=%d", info.Size, info.NumVertices, info.NumEdges, info.Holes, info.Symmetries)
	}
	if opts.Display && opts.Render != nil {
		io.WriteString(out, "\n")
		io.WriteString(out, opts.Render(X))
	}
}

// Print writes each shape passing through as one line (or block when Display is set) to out.
func (stream *ShapeStream) Print(
	out io.Writer,
	opts PrintOpts) *ShapeStream {

	next := stream.next()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			WriteShape(&buf, X, opts)
			buf.WriteByte('\n')
			if _, err := io.WriteString(out, buf.String()); err != nil {
				stream.Fail(errors.Wrap(err, "print"))
			}
			buf.Reset()
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}

// AddTo passes on only the shapes that target accepts as new.
func (stream *ShapeStream) AddTo(target ShapeAdder) *ShapeStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			if target.TryAdd(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog streams every shape in cat that sel selects.
func SelectFromCatalog(cat Catalog, sel ShapeSelector) *ShapeStream {
	next := NewShapeStream()

	onHit := make(chan lattice.Shape, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for X := range onHit {
			if sel.SelectsShape(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// Select passes on only the shapes sel selects.
func (stream *ShapeStream) Select(sel ShapeSelector) *ShapeStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			if sel.SelectsShape(X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

// Canonize replaces each shape with its canonical form.
//
// A shape whose canonical form has a different size is dropped and ErrOutOfGroup is recorded on the stream.
func (stream *ShapeStream) Canonize() *ShapeStream {
	next := stream.next()

	go func() {
		var cz canon.Canonizer
		for X := range stream.Outlet {
			Xc, _ := cz.Canonize(X)
			if len(Xc) != len(X) {
				stream.Fail(errors.Wrapf(ErrOutOfGroup, "shape %v canonized to size %d", X, len(Xc)))
				continue
			}
			next.Outlet <- Xc
		}
		next.Close()
	}()

	return next
}

// Finally passes every shape through unchanged and calls onDone once the input has closed.
func (stream *ShapeStream) Finally(onDone func()) *ShapeStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			next.Outlet <- X
		}
		onDone()
		next.Close()
	}()

	return next
}
