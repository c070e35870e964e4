// Package storage is the contract between the executor and a storage
// backend: per-table column schemas and ordered row scans.
package storage

import (
	"context"
	"fmt"

	"github.com/sievedb/sieve/sql"
)

// Rows is a pull iterator over the stored rows of one table, in the
// backend's native key order. Next returns io.EOF after the last row.
type Rows interface {
	Next(ctx context.Context) (key []byte, row []sql.Value, err error)
	Close() error
}

type Store interface {
	// Columns returns the ordered column schema of a table.
	Columns(ctx context.Context, tbl sql.Identifier) ([]sql.Identifier, error)

	// Rows starts a scan of a table.
	Rows(ctx context.Context, tbl sql.Identifier) (Rows, error)
}

type TableNotFoundError struct {
	Table sql.Identifier
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("storage: table %s not found", e.Table)
}
