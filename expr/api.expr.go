// Package expr reads and writes shapes as cell lists such as "^(0,0) v(0,0) ^(1,0)".
//
// Each cell is an orientation (^ or △ for up, v or ▽ for down) followed by its (q,r) lattice cell.
// Several shapes may be given at once, separated by ';'.
package expr

// Group is one or more shape expressions separated by ';'.
type Group struct {
	Shapes []*ShapeExpr `@@ (";" @@)*`
}

// ShapeExpr lists the cells of one shape.
type ShapeExpr struct {
	Cells []*CellExpr `@@+`
}

// CellExpr is a single triangle: an orientation and its lattice cell.
type CellExpr struct {
	Orient string `@Orient`
	Q      Coord  `"(" @@`
	R      Coord  `"," @@ ")"`
}

// Coord is a signed lattice coordinate.
type Coord struct {
	Neg bool  `@"-"?`
	Abs int32 `@Int`
}

func (c Coord) Value() int32 {
	if c.Neg {
		return -c.Abs
	}
	return c.Abs
}

// IsUp reports whether this cell names an up-pointing triangle.
func (cell *CellExpr) IsUp() bool {
	switch cell.Orient {
	case "^", "△":
		return true
	}
	return false
}
