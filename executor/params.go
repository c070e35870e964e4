package executor

import (
	"context"
	"fmt"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
	"github.com/sievedb/sieve/storage"
)

// JoinColumns is a join target and its column schema.
type JoinColumns struct {
	Table   stmt.TableRef
	Columns []sql.Identifier
}

// SelectParams is the per-query table and column metadata: the driving
// table's schema plus one entry per join clause, in clause order. It is
// computed once and read-only for the query's duration.
type SelectParams struct {
	Table   stmt.TableRef
	Columns []sql.Identifier
	Joins   []JoinColumns
}

// FetchSelectParams resolves column schemas for the driving table and
// every join target. The statement must name exactly one table in FROM
// and every join target must be a plain named table.
func FetchSelectParams(ctx context.Context, store storage.Store,
	sel *stmt.Select) (*SelectParams, error) {

	if len(sel.Tables) == 0 {
		return nil, &UnsupportedStatementError{Reason: "no table in FROM"}
	}
	if len(sel.Tables) > 1 {
		return nil, &UnsupportedStatementError{Reason: "multiple tables in FROM"}
	}

	tbl := sel.Tables[0]
	cols, err := fetchColumns(ctx, store, tbl.Table)
	if err != nil {
		return nil, err
	}

	var joins []JoinColumns
	for _, jc := range sel.Joins {
		jt, ok := jc.Right.(stmt.JoinTable)
		if !ok {
			return nil, &UnsupportedStatementError{
				Reason: fmt.Sprintf("join target %s is not a table", jc.Right),
			}
		}
		jcols, err := fetchColumns(ctx, store, jt.Table)
		if err != nil {
			return nil, err
		}
		joins = append(joins, JoinColumns{
			Table:   jt.TableRef,
			Columns: jcols,
		})
	}

	return &SelectParams{
		Table:   tbl,
		Columns: cols,
		Joins:   joins,
	}, nil
}

func fetchColumns(ctx context.Context, store storage.Store,
	tbl sql.Identifier) ([]sql.Identifier, error) {

	cols, err := store.Columns(ctx, tbl)
	if err != nil {
		return nil, &StorageUnavailableError{Table: tbl, Err: err}
	}
	return cols, nil
}

// hasColumn reports whether any table of the query declares col; used
// to resolve references to join targets absent from a chain after an
// unmatched outer join.
func (sp *SelectParams) hasColumn(col sql.Identifier) bool {
	for _, c := range sp.Columns {
		if c == col {
			return true
		}
	}
	for _, jn := range sp.Joins {
		for _, c := range jn.Columns {
			if c == col {
				return true
			}
		}
	}
	return false
}

// hasTable reports whether nam is the driving table or a join target.
func (sp *SelectParams) hasTable(nam sql.Identifier) bool {
	if sp.Table.Name() == nam {
		return true
	}
	for _, jn := range sp.Joins {
		if jn.Table.Name() == nam {
			return true
		}
	}
	return false
}
