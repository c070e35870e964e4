package keyval

import (
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	log "github.com/sirupsen/logrus"
)

type pebbleKV struct {
	mutex sync.Mutex
	db    *pebble.DB
}

func MakePebbleKV(dataDir string, logger *log.Logger) (KV, error) {
	os.MkdirAll(dataDir, 0755)

	db, err := pebble.Open(dataDir, &pebble.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	return &pebbleKV{
		db: db,
	}, nil
}

// prefixUpperBound is the exclusive upper bound of the keys beginning
// with prefix: the prefix with its last non-0xff byte incremented, or
// nil when no finite bound exists.
func prefixUpperBound(prefix []byte) []byte {
	for pdx := len(prefix) - 1; pdx >= 0; pdx -= 1 {
		if prefix[pdx] != 0xff {
			upper := append([]byte(nil), prefix[:pdx+1]...)
			upper[pdx] += 1
			return upper
		}
	}
	return nil
}

type pebbleIterator struct {
	snap *pebble.Snapshot
	it   *pebble.Iterator
}

func (pkv *pebbleKV) Iterate(prefix []byte) (Iterator, error) {
	var opts *pebble.IterOptions
	if len(prefix) > 0 {
		opts = &pebble.IterOptions{
			LowerBound: prefix,
			UpperBound: prefixUpperBound(prefix),
		}
	}

	snap := pkv.db.NewSnapshot()
	it := snap.NewIter(opts)
	it.First()

	return pebbleIterator{
		snap: snap,
		it:   it,
	}, nil
}

func (pit pebbleIterator) Item(fn func(key, val []byte) error) error {
	if !pit.it.Valid() {
		return io.EOF
	}

	err := fn(pit.it.Key(), pit.it.Value())
	if err != nil {
		return err
	}

	pit.it.Next()
	return nil
}

func (pit pebbleIterator) Close() {
	pit.it.Close()
	pit.snap.Close()
}

type pebbleGetter interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

func pebbleGet(g pebbleGetter, key []byte, fn func(val []byte) error) error {
	val, closer, err := g.Get(key)
	if err == pebble.ErrNotFound {
		return io.EOF
	} else if err != nil {
		return err
	}
	defer closer.Close()

	return fn(val)
}

func (pkv *pebbleKV) Get(key []byte, fn func(val []byte) error) error {
	return pebbleGet(pkv.db, key, fn)
}

type pebbleUpdater struct {
	kv    *pebbleKV
	batch *pebble.Batch
}

func (pkv *pebbleKV) Updater() (Updater, error) {
	pkv.mutex.Lock()

	return pebbleUpdater{
		kv:    pkv,
		batch: pkv.db.NewIndexedBatch(),
	}, nil
}

func (pu pebbleUpdater) Get(key []byte, fn func(val []byte) error) error {
	return pebbleGet(pu.batch, key, fn)
}

func (pu pebbleUpdater) Set(key, val []byte) error {
	return pu.batch.Set(key, val, nil)
}

func (pu pebbleUpdater) Commit(sync bool) error {
	opt := pebble.NoSync
	if sync {
		opt = pebble.Sync
	}
	err := pu.batch.Commit(opt)
	pu.kv.mutex.Unlock()
	return err
}

func (pu pebbleUpdater) Rollback() {
	pu.batch.Close()
	pu.kv.mutex.Unlock()
}
