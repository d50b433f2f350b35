package expr

import (
	"testing"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/lattice"
	"github.com/2x3systems/tri6/walker"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseShape(t *testing.T) {
	X, err := ParseShape("^(0,0) v(0,0) ^(1,0)")
	require.NoError(t, err)
	require.Equal(t, lattice.Shape{
		lattice.CellTriangle(0, 0, true),
		lattice.CellTriangle(0, 0, false),
		lattice.CellTriangle(1, 0, true),
	}, X)

	Y, err := ParseShape("  △(-3, 2)▽(-3,2)  ")
	require.NoError(t, err)
	require.Equal(t, lattice.CellTriangle(-3, 2, true), Y[0])
	require.Equal(t, lattice.CellTriangle(-3, 2, false), Y[1])
	require.True(t, canon.Equal(canon.Canonicalize(Y), canon.Canonicalize(X[:2])))
}

func TestParseShapes(t *testing.T) {
	shapes, err := ParseShapes("^(0,0); ^(0,0) v(0,0)")
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	require.Len(t, shapes[1], 2)

	_, err = ParseShape("^(0,0); ^(0,0) v(0,0)")
	require.True(t, errors.Is(err, tri6.ErrBadShapeExpr))
}

func TestFormatRoundTrip(t *testing.T) {
	shapes, err := walker.Enumerate(6)
	require.NoError(t, err)

	parsed, err := ParseShapes(FormatShapes(shapes))
	require.NoError(t, err)
	require.Equal(t, shapes, parsed)
}

func TestParseErrors(t *testing.T) {
	bad := map[string]string{
		"empty":          "",
		"no orientation": "(0,0)",
		"unclosed":       "^(0,0",
		"stray token":    "^(0,0) x(1,0)",
		"duplicate cell": "^(0,0) v(0,0) ^(0,0)",
		"disconnected":   "^(0,0) ^(1,0)",
		"empty shape":    "^(0,0);",
	}
	for name, s := range bad {
		_, err := ParseShapes(s)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, tri6.ErrBadShapeExpr), "%s: got %v", name, err)
	}
}
