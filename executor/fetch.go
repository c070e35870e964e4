package executor

import (
	"context"
	"io"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
	"github.com/sievedb/sieve/storage"
)

// chainRows streams a table's rows as single-scope context chains, in
// the backend's native scan order.
type chainRows struct {
	table   stmt.TableRef
	columns []sql.Identifier
	rows    storage.Rows
}

func fetchRows(ctx context.Context, store storage.Store, table stmt.TableRef,
	columns []sql.Identifier) (*chainRows, error) {

	rows, err := store.Rows(ctx, table.Table)
	if err != nil {
		return nil, &StorageUnavailableError{Table: table.Table, Err: err}
	}
	return &chainRows{
		table:   table,
		columns: columns,
		rows:    rows,
	}, nil
}

// Next returns the seed chain for the next stored row; io.EOF after the
// last row.
func (cr *chainRows) Next(ctx context.Context) (*BlendContext, error) {
	key, row, err := cr.rows.Next(ctx)
	if err == io.EOF {
		return nil, err
	} else if err != nil {
		return nil, &StorageUnavailableError{Table: cr.table.Table, Err: err}
	}
	return NewBlendContext(cr.table, cr.columns, key, row, nil), nil
}

func (cr *chainRows) Close() error {
	return cr.rows.Close()
}
