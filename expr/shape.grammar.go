package expr

import (
	"strings"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/lattice"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var sShapeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Orient", `[\^vV△▽]`},
	{"Int", `\d+`},
	{"Punct", `[-(),;]`},
	{"whitespace", `\s+`},
})

var sParseShapeExpr = participle.MustBuild[Group](
	participle.Lexer(sShapeLexer),
)

// ParseShapes parses one or more ';'-separated shape expressions.
//
// Each shape must be nonempty, list no cell twice, and be edge-connected.  Cells keep their given positions;
// pass a result to canon.Canonicalize to compare it with enumerated shapes.
func ParseShapes(shapesExpr string) ([]lattice.Shape, error) {
	ast, err := sParseShapeExpr.ParseString("", shapesExpr)
	if err != nil {
		return nil, errors.Wrap(tri6.ErrBadShapeExpr, err.Error())
	}

	shapes := make([]lattice.Shape, 0, len(ast.Shapes))
	for i, sx := range ast.Shapes {
		X, err := sx.Shape()
		if err != nil {
			if len(ast.Shapes) > 1 {
				err = errors.Wrapf(err, "shape #%d", i+1)
			}
			return nil, err
		}
		shapes = append(shapes, X)
	}
	return shapes, nil
}

// ParseShape parses a single shape expression.
func ParseShape(shapeExpr string) (lattice.Shape, error) {
	shapes, err := ParseShapes(shapeExpr)
	if err != nil {
		return nil, err
	}
	if len(shapes) != 1 {
		return nil, errors.Wrapf(tri6.ErrBadShapeExpr, "expected 1 shape, got %d", len(shapes))
	}
	return shapes[0], nil
}

// Shape forms and validates the shape this expression lists.
func (sx *ShapeExpr) Shape() (lattice.Shape, error) {
	X := make(lattice.Shape, 0, len(sx.Cells))
	for _, cell := range sx.Cells {
		t := lattice.CellTriangle(cell.Q.Value(), cell.R.Value(), cell.IsUp())
		if X.Contains(t) {
			return nil, errors.Wrapf(tri6.ErrBadShapeExpr, "cell %v listed twice", t)
		}
		X = append(X, t)
	}
	if !X.IsEdgeConnected() {
		return nil, errors.Wrapf(tri6.ErrBadShapeExpr, "%v is not edge-connected", X)
	}
	return X, nil
}

// Format returns the expression that ParseShape reads back as X.
func Format(X lattice.Shape) string {
	return X.String()
}

// FormatShapes returns the expression that ParseShapes reads back as shapes.
func FormatShapes(shapes []lattice.Shape) string {
	var b strings.Builder
	for i, X := range shapes {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(Format(X))
	}
	return b.String()
}
