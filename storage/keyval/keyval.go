// Package keyval is a storage backend over a narrow key/value engine
// interface; bbolt, badger, and pebble engines are provided.
package keyval

import (
	"context"
	"fmt"
	"io"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/storage"
	"github.com/sievedb/sieve/storage/encode"
)

const (
	schemaKeyTag = 's'
	rowKeyTag    = 'r'
	nextKeyTag   = 'n'
)

type Iterator interface {
	// Item calls fn with the current item and advances; io.EOF after
	// the last item.
	Item(fn func(key, val []byte) error) error
	Close()
}

type Updater interface {
	Get(key []byte, fn func(val []byte) error) error
	Set(key, val []byte) error
	Commit(sync bool) error
	Rollback()
}

type KV interface {
	// Iterate returns an iterator over the keys beginning with prefix,
	// in key order; a nil prefix iterates everything.
	Iterate(prefix []byte) (Iterator, error)
	// Get calls fn with the value of key; io.EOF if key is absent.
	Get(key []byte, fn func(val []byte) error) error
	Updater() (Updater, error)
}

type Store struct {
	kv   KV
	sync bool
}

type rows struct {
	it    Iterator
	ncols int
	tbl   sql.Identifier
	done  bool
}

func NewStore(kv KV, sync bool) *Store {
	return &Store{
		kv:   kv,
		sync: sync,
	}
}

func schemaKey(tbl sql.Identifier) []byte {
	return append([]byte{schemaKeyTag}, []byte(tbl.String())...)
}

func nextKey(tbl sql.Identifier) []byte {
	return append([]byte{nextKeyTag}, []byte(tbl.String())...)
}

func rowKeyPrefix(tbl sql.Identifier) []byte {
	b := []byte(tbl.String())
	buf := encode.EncodeVarint([]byte{rowKeyTag}, uint64(len(b)))
	return append(buf, b...)
}

func (st *Store) CreateTable(tbl sql.Identifier, cols []sql.Identifier) error {
	upd, err := st.kv.Updater()
	if err != nil {
		return err
	}

	err = upd.Get(schemaKey(tbl),
		func(val []byte) error {
			return fmt.Errorf("keyval: table %s already exists", tbl)
		})
	if err != io.EOF {
		upd.Rollback()
		if err == nil {
			return fmt.Errorf("keyval: table %s already exists", tbl)
		}
		return err
	}

	err = upd.Set(schemaKey(tbl), encode.EncodeColumns(cols))
	if err != nil {
		upd.Rollback()
		return err
	}
	return upd.Commit(st.sync)
}

func (st *Store) Insert(tbl sql.Identifier, row []sql.Value) error {
	upd, err := st.kv.Updater()
	if err != nil {
		return err
	}

	var cols []sql.Identifier
	err = upd.Get(schemaKey(tbl),
		func(val []byte) error {
			cols = encode.DecodeColumns(val)
			if cols == nil {
				return fmt.Errorf("keyval: table %s: unable to decode schema", tbl)
			}
			return nil
		})
	if err == io.EOF {
		upd.Rollback()
		return &storage.TableNotFoundError{Table: tbl}
	} else if err != nil {
		upd.Rollback()
		return err
	}
	if len(row) != len(cols) {
		upd.Rollback()
		return fmt.Errorf("keyval: table %s: %d values for %d columns", tbl, len(row), len(cols))
	}

	var next uint64
	err = upd.Get(nextKey(tbl),
		func(val []byte) error {
			_, u, ok := encode.DecodeUint64(val)
			if !ok {
				return fmt.Errorf("keyval: table %s: unable to decode row counter", tbl)
			}
			next = u
			return nil
		})
	if err != nil && err != io.EOF {
		upd.Rollback()
		return err
	}

	next += 1
	err = upd.Set(encode.EncodeUint64(rowKeyPrefix(tbl), next), encode.EncodeRowValue(row))
	if err != nil {
		upd.Rollback()
		return err
	}
	err = upd.Set(nextKey(tbl), encode.EncodeUint64(nil, next))
	if err != nil {
		upd.Rollback()
		return err
	}
	return upd.Commit(st.sync)
}

func (st *Store) Columns(ctx context.Context, tbl sql.Identifier) ([]sql.Identifier, error) {
	var cols []sql.Identifier
	err := st.kv.Get(schemaKey(tbl),
		func(val []byte) error {
			cols = encode.DecodeColumns(val)
			if cols == nil {
				return fmt.Errorf("keyval: table %s: unable to decode schema", tbl)
			}
			return nil
		})
	if err == io.EOF {
		return nil, &storage.TableNotFoundError{Table: tbl}
	} else if err != nil {
		return nil, err
	}
	return cols, nil
}

func (st *Store) Rows(ctx context.Context, tbl sql.Identifier) (storage.Rows, error) {
	cols, err := st.Columns(ctx, tbl)
	if err != nil {
		return nil, err
	}

	it, err := st.kv.Iterate(rowKeyPrefix(tbl))
	if err != nil {
		return nil, err
	}

	return &rows{
		it:    it,
		ncols: len(cols),
		tbl:   tbl,
	}, nil
}

func (r *rows) Next(ctx context.Context) ([]byte, []sql.Value, error) {
	if r.done {
		return nil, nil, io.EOF
	}

	var retKey []byte
	var retRow []sql.Value
	err := r.it.Item(
		func(key, val []byte) error {
			retRow = encode.DecodeRowValue(val)
			if retRow == nil {
				return fmt.Errorf("keyval: table %s: unable to decode row at key %v", r.tbl, key)
			}
			if len(retRow) != r.ncols {
				return fmt.Errorf("keyval: table %s: row at key %v has %d values for %d columns",
					r.tbl, key, len(retRow), r.ncols)
			}
			retKey = append(make([]byte, 0, len(key)), key...)
			return nil
		})
	if err == io.EOF {
		r.done = true
		r.it.Close()
		return nil, nil, io.EOF
	} else if err != nil {
		return nil, nil, err
	}
	return retKey, retRow, nil
}

func (r *rows) Close() error {
	if !r.done {
		r.done = true
		r.it.Close()
	}
	return nil
}
