package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/2x3systems/tri6/tri6"
	"github.com/2x3systems/tri6/canon"
	"github.com/2x3systems/tri6/lattice"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	kShapePrefix, Size (uint16 big endian), CanonicKey (canon.AppendKey)  => ShapeInfo (varints)
	...

Since the size follows the prefix in big endian, iterating yields shapes by ascending size, which allows:
	1) counting and selecting all shapes of a given size range without a scan of the rest
	2) checking if a given shape has already been added (a single Get)

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kShapePrefix    = 0x01
	kShapeKeyOfs    = 3
	kSelectPrefetch = 300
)

// catalog is a db wrapper for a polyiamond catalog
type catalog struct {
	ctx        tri6.CatalogContext
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	state      CatalogState
	db         *badger.DB
	canonizer  canon.Canonizer
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName, or an in-memory catalog if no path is given.
//
// The catalog attaches itself to ctx and detaches when closed.
func OpenCatalog(ctx tri6.CatalogContext, opts tri6.CatalogOpts) (tri6.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(tri6.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if errors.Is(err, badger.ErrKeyNotFound) {
		if opts.ReadOnly {
			err = errors.Wrap(tri6.ErrReadOnly, "catalog has never been written")
		} else {
			err = nil
			cat.state = newCatalogState()
			cat.stateDirty = true
		}
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened catalog %v (%d shapes)", cat.state.CatalogID, cat.totalShapes())
	return cat, nil
}

// CatalogID returns the ID assigned to the given catalog when it was created.
func CatalogID(cat tri6.Catalog) (id uuid.UUID, ok bool) {
	if c, isCat := cat.(*catalog); isCat {
		return c.state.CatalogID, true
	}
	return
}

func (cat *catalog) NumShapes(size int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if size <= 0 || size >= len(cat.state.NumShapes) {
		return 0
	}
	return int64(cat.state.NumShapes[size])
}

func (cat *catalog) totalShapes() uint64 {
	total := uint64(0)
	for _, n := range cat.state.NumShapes {
		total += n
	}
	return total
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.readOnly {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := cat.state.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	var err error
	if cat.db != nil {
		err = cat.flushState()
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
	}
	return err
}

// formShapeKey appends the catalog key of canonical shape Xc to key.
func formShapeKey(key []byte, Xc lattice.Shape) []byte {
	key = append(key, kShapePrefix)
	key = binary.BigEndian.AppendUint16(key, uint16(len(Xc)))
	return canon.AppendKey(key, Xc)
}

func sizePrefix(size int32) []byte {
	prefix := []byte{kShapePrefix, 0, 0}
	binary.BigEndian.PutUint16(prefix[1:], uint16(size))
	return prefix
}

// TryAdd adds the canonical form of X if no equivalent shape is in the catalog.
//
// If true is returned, X was not present and was added.
// If false is returned, X already exists in the catalog (or the catalog is read-only).
func (cat *catalog) TryAdd(X lattice.Shape) bool {
	if cat.readOnly || len(X) == 0 || len(X) > tri6.MaxSize {
		return false
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return false
	}

	Xc, symmetries := cat.canonizer.Canonize(X)
	info := tri6.GetInfo(Xc)
	info.Symmetries = int32(symmetries)

	// Alloc a scrap buf since we can't use the stack for commit bufs
	key := formShapeKey(make([]byte, 0, kShapeKeyOfs+1+4*len(Xc)), Xc)

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	err = txn.Set(key, appendShapeInfo(nil, &info))
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		panic(err)
	}

	cat.state.NumShapes[len(Xc)]++
	cat.stateDirty = true
	return true
}

// Select sends each shape meeting the selection criteria to onHit, in ascending size and then key order.
func (cat *catalog) Select(sel tri6.ShapeSelector, onHit tri6.OnShapeHit) {
	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return
	}

	txn := db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   kSelectPrefetch,
		Prefix:         []byte{kShapePrefix},
	})
	defer it.Close()

	var info tri6.ShapeInfo
	for it.Seek(sizePrefix(max(sel.Min.Size, 1))); it.Valid(); it.Next() {
		item := it.Item()
		key := item.Key()
		if len(key) < kShapeKeyOfs {
			klog.Warningf("skipping malformed catalog key %x", key)
			continue
		}

		size := int32(binary.BigEndian.Uint16(key[1:kShapeKeyOfs]))
		if size > sel.Max.Size {
			break
		}

		err := item.Value(func(val []byte) error {
			return readShapeInfo(val, size, &info)
		})
		if err != nil {
			klog.Warningf("skipping catalog entry %x: %v", key, err)
			continue
		}
		if !sel.SelectsInfo(&info) {
			continue
		}

		X, err := canon.DecodeKey(key[kShapeKeyOfs:])
		if err != nil {
			klog.Warningf("skipping catalog entry %x: %v", key, err)
			continue
		}
		onHit <- X
	}
}
