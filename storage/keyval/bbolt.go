package keyval

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	sieveBucket = []byte{'s', 'i', 'e', 'v', 'e'}
)

type bboltKV struct {
	db *bbolt.DB
}

type bboltIterator struct {
	tx     *bbolt.Tx
	cr     *bbolt.Cursor
	prefix []byte
	next   bool
}

type bboltUpdater struct {
	tx  *bbolt.Tx
	bkt *bbolt.Bucket
}

func MakeBBoltKV(dataDir string) (KV, error) {
	os.MkdirAll(dataDir, 0755)

	db, err := bbolt.Open(filepath.Join(dataDir, "sieve.bbolt"), 0644, nil)
	if err != nil {
		return nil, err
	}
	// Dangerous, but about 100x faster.
	db.NoFreelistSync = true
	db.NoSync = true

	tx, err := db.Begin(true)
	if err != nil {
		return nil, err
	}
	if tx.Bucket(sieveBucket) == nil {
		_, err = tx.CreateBucket(sieveBucket)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		err = tx.Commit()
		if err != nil {
			return nil, err
		}
	} else {
		tx.Rollback()
	}

	return bboltKV{
		db: db,
	}, nil
}

func (bkv bboltKV) begin(writable bool) (*bbolt.Tx, *bbolt.Bucket, error) {
	tx, err := bkv.db.Begin(writable)
	if err != nil {
		return nil, nil, fmt.Errorf("bbolt: begin failed: %s", err)
	}
	bkt := tx.Bucket(sieveBucket)
	if bkt == nil {
		return nil, nil, errors.New("bbolt: missing sieve bucket")
	}
	return tx, bkt, nil
}

func (bkv bboltKV) Iterate(prefix []byte) (Iterator, error) {
	tx, bkt, err := bkv.begin(false)
	if err != nil {
		return nil, err
	}

	return &bboltIterator{
		tx:     tx,
		cr:     bkt.Cursor(),
		prefix: append(make([]byte, 0, len(prefix)), prefix...),
	}, nil
}

func (bit *bboltIterator) Item(fn func(key, val []byte) error) error {
	var key, val []byte
	if bit.next {
		key, val = bit.cr.Next()
	} else {
		key, val = bit.cr.Seek(bit.prefix)
		bit.next = true
	}

	if key == nil || !bytes.HasPrefix(key, bit.prefix) {
		return io.EOF
	}

	return fn(key, val)
}

func (bit *bboltIterator) Close() {
	if bit.tx != nil {
		bit.tx.Rollback()
	}
}

func (bkv bboltKV) Get(key []byte, fn func(val []byte) error) error {
	tx, bkt, err := bkv.begin(false)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	val := bkt.Get(key)
	if val == nil {
		return io.EOF
	}
	return fn(val)
}

func (bkv bboltKV) Updater() (Updater, error) {
	tx, bkt, err := bkv.begin(true)
	if err != nil {
		return nil, err
	}
	return bboltUpdater{
		tx:  tx,
		bkt: bkt,
	}, nil
}

func (bu bboltUpdater) Get(key []byte, fn func(val []byte) error) error {
	val := bu.bkt.Get(key)
	if val == nil {
		return io.EOF
	}
	return fn(val)
}

func (bu bboltUpdater) Set(key, val []byte) error {
	return bu.bkt.Put(key, val)
}

func (bu bboltUpdater) Commit(sync bool) error {
	return bu.tx.Commit()
}

func (bu bboltUpdater) Rollback() {
	bu.tx.Rollback()
}
