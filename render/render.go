// Package render draws shapes as text, one row per lattice row, using △ and ▽ for up and down triangles.
package render

import (
	"strings"

	"github.com/2x3systems/tri6/lattice"
)

const (
	UpRune   = '△'
	DownRune = '▽'
)

// ShapeToDisplayForm returns X drawn as text rows (top row first), trailing spaces trimmed, rows joined by '\n'.
//
// Cell (q, r) occupies columns 2q+r (up) and 2q+r+1 (down) of row r, so rows shear to the right as r grows.
func ShapeToDisplayForm(X lattice.Shape) string {
	if len(X) == 0 {
		return ""
	}
	lo, _ := X.Bounds()

	type cellPos struct {
		q, r int
		isUp bool
	}
	cells := make([]cellPos, len(X))
	maxQ, maxR := 0, 0
	for i, t := range X {
		q, r, isUp := t.Cell()
		pos := cellPos{int(q - lo.A), int(r - lo.B), isUp}
		maxQ = max(maxQ, pos.q)
		maxR = max(maxR, pos.r)
		cells[i] = pos
	}

	height := maxR + 1
	width := 2*(maxQ+1) + maxR + 2
	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", width))
	}
	for _, pos := range cells {
		row := maxR - pos.r
		col := 2*pos.q + pos.r
		if pos.isUp {
			grid[row][col] = UpRune
		} else {
			grid[row][col+1] = DownRune
		}
	}

	var b strings.Builder
	for row, runes := range grid {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(runes), " "))
	}
	return b.String()
}
