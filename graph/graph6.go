package graph

import (
	"github.com/2x3systems/tri6/tri6"
	"github.com/pkg/errors"
)

const g6Bias = 63

// MaxGraph6Order is the largest vertex count this package encodes (the 4-byte graph6 size form).
const MaxGraph6Order = 258047

// EncodeGraph6 returns g in graph6 format (the upper triangle of the adjacency matrix, column by column).
//
// g must have at most MaxGraph6Order vertices, which holds for ToGraph of any shape up to tri6.MaxSize.
// Panics otherwise.
func EncodeGraph6(g *Graph) string {
	pairs := make([][2]int, len(g.Edges))
	for i, e := range g.Edges {
		pairs[i] = [2]int{e.Lo, e.Hi}
	}
	buf, err := AppendGraph6(nil, len(g.Vertices), pairs)
	if err != nil {
		panic(err)
	}
	return string(buf)
}

// AppendGraph6 appends the graph6 encoding of the n-vertex graph having the given edges to dst.
//
// Edges that are loops or that name a vertex outside 0..n-1 are skipped.
func AppendGraph6(dst []byte, n int, edges [][2]int) ([]byte, error) {
	if n < 0 || n > MaxGraph6Order {
		return dst, errors.Wrapf(tri6.ErrBadGraph6, "order %d is outside 0..%d", n, MaxGraph6Order)
	}
	if n <= 62 {
		dst = append(dst, byte(n+g6Bias))
	} else {
		dst = append(dst,
			126,
			byte((n>>12)&63+g6Bias),
			byte((n>>6)&63+g6Bias),
			byte(n&63+g6Bias),
		)
	}

	numBits := n * (n - 1) / 2
	bits := make([]byte, (numBits+5)/6)
	for _, e := range edges {
		i, j := e[0], e[1]
		if i > j {
			i, j = j, i
		}
		if i == j || i < 0 || j >= n {
			continue
		}
		pos := j*(j-1)/2 + i
		bits[pos/6] |= 1 << (5 - pos%6)
	}
	for _, b := range bits {
		dst = append(dst, b+g6Bias)
	}
	return dst, nil
}

// DecodeGraph6 parses a graph6 string, returning the vertex count and the edges (i < j), ordered as encoded.
func DecodeGraph6(s string) (n int, edges [][2]int, err error) {
	if len(s) == 0 {
		return 0, nil, errors.Wrap(tri6.ErrBadGraph6, "empty string")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < g6Bias || s[i] > 126 {
			return 0, nil, errors.Wrapf(tri6.ErrBadGraph6, "byte %d out of range", i)
		}
	}

	body := s[1:]
	if s[0] == 126 {
		if len(s) < 4 || s[1] == 126 {
			return 0, nil, errors.Wrap(tri6.ErrBadGraph6, "unsupported size header")
		}
		n = int(s[1]-g6Bias)<<12 | int(s[2]-g6Bias)<<6 | int(s[3]-g6Bias)
		body = s[4:]
	} else {
		n = int(s[0] - g6Bias)
	}

	numBits := n * (n - 1) / 2
	if want := (numBits + 5) / 6; len(body) != want {
		return 0, nil, errors.Wrapf(tri6.ErrBadGraph6, "%d vertices need %d data bytes, got %d", n, want, len(body))
	}

	pos := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			if (body[pos/6]-g6Bias)>>(5-pos%6)&1 != 0 {
				edges = append(edges, [2]int{i, j})
			}
			pos++
		}
	}
	return n, edges, nil
}
