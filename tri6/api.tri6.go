package tri6

import (
	"github.com/2x3systems/tri6/lattice"
)

const (

	// MaxSize is the largest shape size (triangle count) the catalog and selectors account for.
	MaxSize = 64

	// MaxEdges is the most unit edges a shape of MaxSize triangles can have (2n+1, reached by a strip).
	MaxEdges = 2*MaxSize + 1
)

// EnumOpts specifies params for an enumeration run.
type EnumOpts struct {
	SizeMin int  `yaml:"size_min"` // smallest size emitted (0 or 1 denotes 1)
	SizeMax int  `yaml:"size_max"` // largest size enumerated
	Workers int  `yaml:"workers"`  // goroutines per generation (0 or 1 denotes single-threaded)
	KeepAll bool `yaml:"keep_all"` // retain every generation rather than only current and next
	Verify  bool `yaml:"verify"`   // check every shape is a canonical fixed point and check known counts
}

// ShapeInfo summarizes a canonical shape.
type ShapeInfo struct {
	Size        int32 `yaml:"size"`     // number of triangles
	NumVertices int32 `yaml:"vertices"` // distinct lattice vertices
	NumEdges    int32 `yaml:"edges"`    // distinct unit edges
	Holes       int32 `yaml:"holes"`    // enclosed empty regions
	Symmetries  int32 `yaml:"symmetries"`
}

// ShapeSelector is an operator that either selects a given shape or not.
type ShapeSelector struct {
	Min ShapeInfo `yaml:"min"` // lower select bounds
	Max ShapeInfo `yaml:"max"` // upper select bounds
}

// DefaultShapeSelector selects every shape.
var DefaultShapeSelector = ShapeSelector{
	Min: ShapeInfo{
		Size:        1,
		NumVertices: 3,
		NumEdges:    3,
		Symmetries:  1,
	},
	Max: ShapeInfo{
		Size:        MaxSize,
		NumVertices: MaxSize + 2,
		NumEdges:    MaxEdges,
		Holes:       MaxSize,
		Symmetries:  12,
	},
}

// PrintOpts specifies what is printed for each shape
type PrintOpts struct {
	Label   string        `yaml:"label"`   // Prefix label
	Expr    bool          `yaml:"expr"`    // If set, prints the shape's cell expression
	Info    bool          `yaml:"info"`    // If set, prints vertex, edge, hole, and symmetry counts
	Display bool          `yaml:"display"` // If set, prints the ASCII display form (via Render)
	Render  ShapeRenderer `yaml:"-"`       // renders the display form; nil disables Display
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Expr: true,
	Info: true,
}

// ShapeRenderer returns a multi-line display form of a shape.
type ShapeRenderer func(X lattice.Shape) string

// OnShapeHit is a channel used to return shapes meeting a set of selection criteria.
// Ownership of a shape also travels through the channel.
type OnShapeHit chan<- lattice.Shape

// ShapeAdder is a set of shapes identified up to D6 and translation.
type ShapeAdder interface {

	// Tries to add the given shape.
	// If true is returned, no equivalent shape existed and X was added.
	TryAdd(X lattice.Shape) bool
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string `yaml:"path"`      // omit for in-memory db
	ReadOnly   bool   `yaml:"read_only"` // open in read-only mode
}

// Catalog wraps a database of canonical shapes, keyed by size.
type Catalog interface {
	ShapeAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumShapes returns the number of shapes in this catalog of a given size.
	// An out of bounds size returns 0.
	NumShapes(size int) int64

	// Select sends each shape meeting the selection criteria to onHit, in ascending size then key order.
	Select(sel ShapeSelector, onHit OnShapeHit)

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}
