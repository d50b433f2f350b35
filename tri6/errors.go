package tri6

import "errors"

// Errors
var (
	ErrEmptyGeneration = errors.New("generation unexpectedly empty")
	ErrOutOfGroup      = errors.New("canonical image is not a fixed point of the shape")
	ErrBadShapeExpr    = errors.New("bad shape expression")
	ErrBadGraph6       = errors.New("bad graph6 encoding")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogVersion  = errors.New("unsupported catalog version")
	ErrReadOnly        = errors.New("catalog is read-only")
	ErrBadConfig       = errors.New("bad config")
)
