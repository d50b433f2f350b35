package canon

import (
	"bytes"
	"hash/maphash"

	"github.com/2x3systems/tri6/lattice"
	"github.com/dgraph-io/badger/v3"
)

// CanonicSet allows adding shapes and returning if an equivalent shape (up to D6 and translation) has already been added.
type CanonicSet interface {

	// TryAdd adds the given shape if no equivalent shape is already present.
	//
	// If the canonic version of X already is in this CanonicSet, this call has no effect and TryAdd() returns false.
	// If X isn't in this set, X is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(X lattice.Shape) bool

	// Len returns how many distinct shapes have been added.
	Len() int

	// Close removes all previously added items from this set.
	Close()
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)
}

// NewDropDupes returns a CanonicSet held in a hash map whose keys are packed into large shared byte pools.
func NewDropDupes(opts DropDupeOpts) CanonicSet {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

type dropDupes struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	canonizer Canonizer
	bufPool   []byte
	bufPoolSz int
	count     int
	opts      DropDupeOpts
}

func (set *dropDupes) Len() int {
	return set.count
}

func (set *dropDupes) Close() {
	set.bufPoolSz = 0
	set.count = 0
	clear(set.hashMap)
}

func (set *dropDupes) TryAdd(X lattice.Shape) bool {
	var keyBuf KeyBuf
	Xc, _ := set.canonizer.Canonize(X)
	Xkey := AppendKey(keyBuf[:0], Xc)

	set.hasher.Reset()
	set.hasher.Write(Xkey)
	hash := set.hasher.Sum64()

	existing, found := set.hashMap[hash]
	for found {
		if bytes.Equal(existing, Xkey) {
			return false
		}
		hash++
		existing, found = set.hashMap[hash]
	}

	// New entry: place a copy of the key in our pool, starting a new pool if we run out of space.
	pos := set.bufPoolSz
	itemLen := len(Xkey)
	if pos+itemLen > cap(set.bufPool) {
		allocSz := max(set.opts.PoolSz, itemLen)
		set.bufPool = make([]byte, allocSz)
		set.bufPoolSz = 0
		pos = 0
	}

	set.hashMap[hash] = append(set.bufPool[pos:pos], Xkey...)
	set.bufPoolSz += itemLen
	set.count++
	return true
}

// NewLSMSet returns a CanonicSet backed by an in-memory badger instance.
func NewLSMSet() CanonicSet {
	return &lsmSet{}
}

type lsmSet struct {
	db        *badger.DB
	canonizer Canonizer
	count     int
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) TryAdd(X lattice.Shape) bool {
	var keyBuf KeyBuf
	Xc, _ := set.canonizer.Canonize(X)
	return set.tryAdd(AppendKey(keyBuf[:0], Xc))
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}

	if err != nil {
		panic(err)
	}

	if added {
		set.count++
	}
	return added
}

func (set *lsmSet) Len() int {
	return set.count
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}
