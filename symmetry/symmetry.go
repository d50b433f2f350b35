package symmetry

import (
	"fmt"

	"github.com/2x3systems/tri6/lattice"
)

// GroupOrder is the number of elements in D6 (6 rotations x 2 reflection states).
const GroupOrder = 12

// Rotate60 rotates a vertex 60° counter-clockwise about the origin: (a,b) -> (-b, a+b)
func Rotate60(v lattice.Vertex) lattice.Vertex {
	return lattice.Vertex{A: -v.B, B: v.A + v.B}
}

// Reflect mirrors a vertex across the a-axis: (a,b) -> (a+b, -b)
func Reflect(v lattice.Vertex) lattice.Vertex {
	return lattice.Vertex{A: v.A + v.B, B: -v.B}
}

// Element is one of the 12 elements of D6.
//
// Applying an Element reflects first (if Reflected is set) and then rotates by 60° Rotations times.
type Element struct {
	Rotations int  // 0..5
	Reflected bool // reflect before rotating
}

// Identity is the Element that leaves every vertex in place.
var Identity = Element{}

// Group returns all 12 elements of D6, rotations outer and reflection inner.
func Group() [GroupOrder]Element {
	return sGroup
}

func (e Element) String() string {
	if e.Reflected {
		return fmt.Sprintf("F·R%d", e.Rotations)
	}
	return fmt.Sprintf("R%d", e.Rotations)
}

// index returns this element's position in Group()
func (e Element) index() int {
	rot := ((e.Rotations % 6) + 6) % 6
	idx := 2 * rot
	if e.Reflected {
		idx++
	}
	return idx
}

// ApplyVertex maps a single vertex through this element.
func (e Element) ApplyVertex(v lattice.Vertex) lattice.Vertex {
	return sMatrices[e.index()].apply(v)
}

// ApplyTriangle maps a triangle through this element.
func (e Element) ApplyTriangle(t lattice.Triangle) lattice.Triangle {
	m := &sMatrices[e.index()]
	return lattice.NewTriangle(m.apply(t[0]), m.apply(t[1]), m.apply(t[2]))
}

// Apply returns the image of X under e as a new Shape.
//
// Size and connectivity are preserved but position is not, so images are normalized before being compared.
func Apply(X lattice.Shape, e Element) lattice.Shape {
	m := &sMatrices[e.index()]
	image := make(lattice.Shape, len(X))
	for i, t := range X {
		image[i] = lattice.NewTriangle(m.apply(t[0]), m.apply(t[1]), m.apply(t[2]))
	}
	return image
}

// ApplyInto writes the image of X under e into dst (which must have len(X)) and returns the componentwise min vertex.
func ApplyInto(dst, X lattice.Shape, e Element) (lo lattice.Vertex) {
	m := &sMatrices[e.index()]
	for i, t := range X {
		ti := lattice.NewTriangle(m.apply(t[0]), m.apply(t[1]), m.apply(t[2]))
		dst[i] = ti
		for j, v := range ti {
			if (i == 0 && j == 0) || v.A < lo.A {
				lo.A = v.A
			}
			if (i == 0 && j == 0) || v.B < lo.B {
				lo.B = v.B
			}
		}
	}
	return lo
}

// Compose returns the single element equivalent to applying first and then second.
func Compose(first, second Element) Element {
	m := sMatrices[second.index()].mul(&sMatrices[first.index()])
	idx, ok := sIndexOf[m]
	if !ok {
		panic(fmt.Sprintf("symmetry: %v∘%v is outside of D6", second, first))
	}
	return sGroup[idx]
}

// Inverse returns the element that undoes e.
func Inverse(e Element) Element {
	for _, ei := range sGroup {
		if Compose(e, ei) == Identity {
			return ei
		}
	}
	panic("symmetry: element has no inverse")
}

// matrix is the integer 2x2 linear map (a,b) -> (m00*a + m01*b, m10*a + m11*b)
type matrix [4]int32

func (m *matrix) apply(v lattice.Vertex) lattice.Vertex {
	return lattice.Vertex{
		A: m[0]*v.A + m[1]*v.B,
		B: m[2]*v.A + m[3]*v.B,
	}
}

// mul returns m·n (apply n, then m)
func (m *matrix) mul(n *matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2], m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2], m[2]*n[1] + m[3]*n[3],
	}
}

var (
	sGroup    [GroupOrder]Element
	sMatrices [GroupOrder]matrix
	sIndexOf  = make(map[matrix]int, GroupOrder)
)

func init() {
	rot := matrix{0, -1, 1, 1}  // Rotate60
	refl := matrix{1, 1, 0, -1} // Reflect

	Rk := matrix{1, 0, 0, 1}
	for k := 0; k < 6; k++ {
		for _, reflected := range [2]bool{false, true} {
			e := Element{Rotations: k, Reflected: reflected}
			m := Rk
			if reflected {
				m = Rk.mul(&refl)
			}
			idx := e.index()
			sGroup[idx] = e
			sMatrices[idx] = m
			sIndexOf[m] = idx
		}
		Rk = rot.mul(&Rk)
	}
	if len(sIndexOf) != GroupOrder {
		panic("symmetry: D6 elements are not distinct")
	}
}
