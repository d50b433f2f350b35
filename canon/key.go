package canon

import (
	"github.com/2x3systems/tri6/lattice"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// ErrBadKey means a byte string could not be decoded as a shape key.
var ErrBadKey = errors.New("malformed shape key")

// KeyBuf is a stack buffer large enough for the key of most shapes that come up in practice.
type KeyBuf [256]byte

// AppendKey appends a compact, unambiguous encoding of X to dst and returns the extended buffer.
//
// The key is the triangle count followed by each triangle's cell as a pair of zigzag varints: q, then 2r+up.
// Two sorted shapes have equal keys iff they are Equal, so keys of canonical shapes identify polyiamonds.
func AppendKey(dst []byte, X lattice.Shape) []byte {
	buf := proto.NewBuffer(dst)
	buf.EncodeVarint(uint64(len(X)))
	for _, t := range X {
		q, r, isUp := t.Cell()
		rr := int64(r) << 1
		if isUp {
			rr |= 1
		}
		buf.EncodeZigzag64(uint64(int64(q)))
		buf.EncodeZigzag64(uint64(rr))
	}
	return buf.Bytes()
}

// DecodeKey reverses AppendKey.
func DecodeKey(key []byte) (lattice.Shape, error) {
	buf := proto.NewBuffer(key)
	N, err := buf.DecodeVarint()
	if err != nil {
		return nil, errors.Wrap(ErrBadKey, err.Error())
	}
	if N > uint64(len(key)) {
		return nil, errors.Wrapf(ErrBadKey, "triangle count %d exceeds key length", N)
	}

	X := make(lattice.Shape, N)
	for i := range X {
		q, err := buf.DecodeZigzag64()
		if err != nil {
			return nil, errors.Wrapf(ErrBadKey, "triangle %d: %v", i, err)
		}
		rr, err := buf.DecodeZigzag64()
		if err != nil {
			return nil, errors.Wrapf(ErrBadKey, "triangle %d: %v", i, err)
		}
		r := int64(rr) >> 1
		X[i] = lattice.CellTriangle(int32(int64(q)), int32(r), int64(rr)&1 != 0)
	}
	return X, nil
}
