package catalog

import (
	"github.com/2x3systems/tri6/tri6"
	"github.com/gogo/protobuf/proto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	kMajorVers = 2026
	kMinorVers = 1
)

// CatalogState is the bookkeeping a catalog keeps alongside its shapes.
type CatalogState struct {
	MajorVers uint32
	MinorVers uint32
	CatalogID uuid.UUID // assigned when the catalog is first created
	NumShapes []uint64  // NumShapes[size] is the number of shapes of that size
}

func newCatalogState() CatalogState {
	return CatalogState{
		MajorVers: kMajorVers,
		MinorVers: kMinorVers,
		CatalogID: uuid.New(),
		NumShapes: make([]uint64, tri6.MaxSize+1),
	}
}

func (st *CatalogState) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 32+2*len(st.NumShapes)))
	buf.EncodeVarint(uint64(st.MajorVers))
	buf.EncodeVarint(uint64(st.MinorVers))
	if err := buf.EncodeRawBytes(st.CatalogID[:]); err != nil {
		return nil, err
	}
	buf.EncodeVarint(uint64(len(st.NumShapes)))
	for _, n := range st.NumShapes {
		buf.EncodeVarint(n)
	}
	return buf.Bytes(), nil
}

func (st *CatalogState) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)

	major, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrap(err, "catalog state")
	}
	minor, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrap(err, "catalog state")
	}
	st.MajorVers, st.MinorVers = uint32(major), uint32(minor)
	if st.MajorVers != kMajorVers || st.MinorVers != kMinorVers {
		return errors.Wrapf(tri6.ErrCatalogVersion, "found v%d.%d, want v%d.%d", major, minor, kMajorVers, kMinorVers)
	}

	idBytes, err := buf.DecodeRawBytes(false)
	if err != nil {
		return errors.Wrap(err, "catalog state")
	}
	if st.CatalogID, err = uuid.FromBytes(idBytes); err != nil {
		return errors.Wrap(err, "catalog state")
	}

	numSizes, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrap(err, "catalog state")
	}
	if numSizes > uint64(len(val)) {
		return errors.Errorf("catalog state: %d sizes exceeds state length", numSizes)
	}
	st.NumShapes = make([]uint64, max(numSizes, tri6.MaxSize+1))
	for i := uint64(0); i < numSizes; i++ {
		if st.NumShapes[i], err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(err, "catalog state")
		}
	}
	return nil
}

// appendShapeInfo appends the value stored with each catalog shape.
func appendShapeInfo(dst []byte, info *tri6.ShapeInfo) []byte {
	buf := proto.NewBuffer(dst)
	buf.EncodeVarint(uint64(info.NumVertices))
	buf.EncodeVarint(uint64(info.NumEdges))
	buf.EncodeVarint(uint64(info.Holes))
	buf.EncodeVarint(uint64(info.Symmetries))
	return buf.Bytes()
}

func readShapeInfo(val []byte, size int32, info *tri6.ShapeInfo) error {
	buf := proto.NewBuffer(val)
	var fields [4]uint64
	for i := range fields {
		var err error
		if fields[i], err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(err, "shape info")
		}
	}
	*info = tri6.ShapeInfo{
		Size:        size,
		NumVertices: int32(fields[0]),
		NumEdges:    int32(fields[1]),
		Holes:       int32(fields[2]),
		Symmetries:  int32(fields[3]),
	}
	return nil
}
