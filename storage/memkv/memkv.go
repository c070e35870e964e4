// Package memkv is an in-memory storage backend over a btree, keyed by
// insertion order; it is the backend used by executor tests.
package memkv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/btree"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/storage"
	"github.com/sievedb/sieve/storage/encode"
)

type Store struct {
	mutex  sync.Mutex
	tables map[sql.Identifier]*table
}

type table struct {
	columns []sql.Identifier
	tree    *btree.BTree
	lastKey uint64
}

type treeItem struct {
	key []byte
	row []sql.Value
}

type rows struct {
	idx   int
	items []treeItem
}

func (ti treeItem) Less(item btree.Item) bool {
	ti2 := item.(treeItem)
	return bytes.Compare(ti.key, ti2.key) < 0
}

func NewStore() *Store {
	return &Store{
		tables: map[sql.Identifier]*table{},
	}
}

func (st *Store) CreateTable(tbl sql.Identifier, cols []sql.Identifier) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if _, ok := st.tables[tbl]; ok {
		return fmt.Errorf("memkv: table %s already exists", tbl)
	}
	st.tables[tbl] = &table{
		columns: cols,
		tree:    btree.New(16),
	}
	return nil
}

func (st *Store) Insert(tbl sql.Identifier, row []sql.Value) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	t, ok := st.tables[tbl]
	if !ok {
		return &storage.TableNotFoundError{Table: tbl}
	}
	if len(row) != len(t.columns) {
		return fmt.Errorf("memkv: table %s: %d values for %d columns", tbl, len(row),
			len(t.columns))
	}

	t.lastKey += 1
	t.tree.ReplaceOrInsert(treeItem{
		key: encode.EncodeUint64(nil, t.lastKey),
		row: append(make([]sql.Value, 0, len(row)), row...),
	})
	return nil
}

func (st *Store) Columns(ctx context.Context, tbl sql.Identifier) ([]sql.Identifier, error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	t, ok := st.tables[tbl]
	if !ok {
		return nil, &storage.TableNotFoundError{Table: tbl}
	}
	return t.columns, nil
}

func (st *Store) Rows(ctx context.Context, tbl sql.Identifier) (storage.Rows, error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	t, ok := st.tables[tbl]
	if !ok {
		return nil, &storage.TableNotFoundError{Table: tbl}
	}

	items := make([]treeItem, 0, t.tree.Len())
	t.tree.Ascend(
		func(item btree.Item) bool {
			items = append(items, item.(treeItem))
			return true
		})

	return &rows{items: items}, nil
}

func (r *rows) Next(ctx context.Context) ([]byte, []sql.Value, error) {
	if r.idx == len(r.items) {
		return nil, nil, io.EOF
	}

	item := r.items[r.idx]
	r.idx += 1
	return item.key, item.row, nil
}

func (r *rows) Close() error {
	r.idx = len(r.items)
	return nil
}
