package canon

import (
	"testing"

	"github.com/2x3systems/tri6/lattice"
	"github.com/2x3systems/tri6/symmetry"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func cells(specs ...[3]int32) lattice.Shape {
	X := make(lattice.Shape, len(specs))
	for i, s := range specs {
		X[i] = lattice.CellTriangle(s[0], s[1], s[2] != 0)
	}
	return X
}

var testShapes = map[string]lattice.Shape{
	"seed":    lattice.Seed(),
	"diamond": cells([3]int32{0, 0, 1}, [3]int32{0, 0, 0}),
	"strip3":  cells([3]int32{0, 0, 1}, [3]int32{0, 0, 0}, [3]int32{1, 0, 1}),
	"chevron": cells([3]int32{0, 0, 1}, [3]int32{0, 0, 0}, [3]int32{0, 1, 1}, [3]int32{1, 0, 1}),
	"hexagon": cells(
		[3]int32{0, 0, 0}, [3]int32{1, 0, 1}, [3]int32{1, 0, 0},
		[3]int32{0, 1, 1}, [3]int32{0, 1, 0}, [3]int32{1, 1, 1},
	),
	"lopsided": cells([3]int32{-2, 3, 1}, [3]int32{-2, 3, 0}, [3]int32{-1, 3, 1}, [3]int32{-1, 3, 0}, [3]int32{-1, 2, 0}),
}

func TestCanonicalizeInvariance(t *testing.T) {
	for name, X := range testShapes {
		Xc := Canonicalize(X)
		if !Xc.IsSorted() {
			t.Fatalf("%s: canonical form not sorted: %v", name, Xc)
		}
		if lo, _ := Xc.Bounds(); lo != (lattice.Vertex{}) {
			t.Fatalf("%s: canonical form not at origin: lo=%v", name, lo)
		}
		if diff := cmp.Diff(Xc, Canonicalize(Xc)); diff != "" {
			t.Fatalf("%s: Canonicalize is not idempotent (-first +second):\n%s", name, diff)
		}

		for _, e := range symmetry.Group() {
			image := symmetry.Apply(X, e)
			shift := lattice.Vertex{A: 7, B: -3}
			for i := range image {
				image[i] = image[i].Translate(shift)
			}
			if !Equal(Canonicalize(image), Xc) {
				t.Fatalf("%s: image under %v canonicalized differently", name, e)
			}
		}
	}
}

func TestCanonicalizeDoesNotAlias(t *testing.T) {
	X := testShapes["strip3"].Clone()
	before := X.Clone()
	Xc := Canonicalize(X)
	if diff := cmp.Diff(before, X); diff != "" {
		t.Fatalf("Canonicalize mutated its input:\n%s", diff)
	}
	Xc[0] = lattice.CellTriangle(9, 9, true)
	if Equal(Xc, Canonicalize(X)) {
		t.Fatal("canonical form shares storage")
	}
}

func TestNormalizePosition(t *testing.T) {
	X := testShapes["lopsided"]
	Xn := NormalizePosition(X)
	lo, _ := Xn.Bounds()
	if lo != (lattice.Vertex{}) {
		t.Fatalf("NormalizePosition left min vertex at %v", lo)
	}
	if !Xn.IsSorted() || len(Xn) != len(X) {
		t.Fatalf("NormalizePosition produced %v", Xn)
	}
	if len(NormalizePosition(nil)) != 0 {
		t.Fatal("NormalizePosition(nil) should be empty")
	}
}

func TestDistinctShapesDiffer(t *testing.T) {
	A := testShapes["strip3"]
	B := cells([3]int32{0, 0, 1}, [3]int32{0, 0, 0}, [3]int32{0, 1, 1})
	if !Equal(Canonicalize(A), Canonicalize(B)) {
		t.Fatal("every triamond is equivalent, got distinct canonical forms")
	}
	if Equal(Canonicalize(testShapes["chevron"]), Canonicalize(testShapes["lopsided"])) {
		t.Fatal("shapes of different sizes compared equal")
	}
	if Compare(A[:1], A) >= 0 {
		t.Fatal("a prefix should order before the longer shape")
	}
}

func TestSymmetries(t *testing.T) {
	want := map[string]int{
		"seed":    6,
		"diamond": 4,
		"strip3":  2,
		"chevron": 6,
		"hexagon": 12,
	}
	for name, n := range want {
		if got := Symmetries(testShapes[name]); got != n {
			t.Errorf("Symmetries(%s) = %d, want %d", name, got, n)
		}
	}
	if !IsCanonical(Canonicalize(testShapes["hexagon"])) {
		t.Error("canonical hexagon should report IsCanonical")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for name, X := range testShapes {
		Xs := X.Clone()
		Xs.Sort()
		var buf KeyBuf
		key := AppendKey(buf[:0], Xs)
		got, err := DecodeKey(key)
		if err != nil {
			t.Fatalf("%s: DecodeKey: %v", name, err)
		}
		if diff := cmp.Diff(Xs, got); diff != "" {
			t.Fatalf("%s: key round trip (-want +got):\n%s", name, diff)
		}
	}

	key := AppendKey(nil, testShapes["chevron"])
	if _, err := DecodeKey(key[:len(key)-1]); !errors.Is(err, ErrBadKey) {
		t.Fatalf("truncated key: got err %v, want ErrBadKey", err)
	}
	if _, err := DecodeKey(nil); !errors.Is(err, ErrBadKey) {
		t.Fatalf("empty key: got err %v, want ErrBadKey", err)
	}
}

func TestCanonicSets(t *testing.T) {
	sets := map[string]CanonicSet{
		"dropDupes": NewDropDupes(DropDupeOpts{PoolSz: 16}),
		"lsmSet":    NewLSMSet(),
	}
	for name, set := range sets {
		for _, X := range testShapes {
			if !set.TryAdd(X) {
				t.Fatalf("%s: first TryAdd(%v) returned false", name, X)
			}
		}
		for _, X := range testShapes {
			image := symmetry.Apply(X, symmetry.Element{Rotations: 2, Reflected: true})
			if set.TryAdd(image) {
				t.Fatalf("%s: an image of %v was added twice", name, X)
			}
		}
		if set.Len() != len(testShapes) {
			t.Fatalf("%s: Len() = %d, want %d", name, set.Len(), len(testShapes))
		}
		set.Close()
		if set.Len() != 0 || !set.TryAdd(lattice.Seed()) {
			t.Fatalf("%s: Close() did not reset the set", name)
		}
		set.Close()
	}
}
