// Package executor evaluates SELECT statements over a storage backend
// as a lazy, single-threaded pipeline: scan the driving table, fold
// each join clause over the row's context chain, filter, window by
// limit/offset, and project. One row is fully processed at a time and
// output preserves the driving table's scan order.
package executor

import (
	"context"
	"io"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
	"github.com/sievedb/sieve/storage"
)

// Rows is the lazy result of a SELECT: a pull iterator over output
// rows. Next returns io.EOF after the last row; the sequence is not
// restartable.
type Rows struct {
	store  storage.Store
	sel    *stmt.Select
	params *SelectParams
	fctx   *FilterContext
	blend  *blend
	limit  limiter
	scan   *chainRows
	rowdx  int64
}

// Select starts evaluation of sel against store. fctx is the enclosing
// query's correlation context for nested evaluation; it is nil for a
// top level query.
func Select(ctx context.Context, store storage.Store, sel *stmt.Select,
	fctx *FilterContext) (*Rows, error) {

	params, err := FetchSelectParams(ctx, store, sel)
	if err != nil {
		return nil, err
	}
	bl, err := makeBlend(params, sel.Fields)
	if err != nil {
		return nil, err
	}
	scan, err := fetchRows(ctx, store, params.Table, params.Columns)
	if err != nil {
		return nil, err
	}

	return &Rows{
		store:  store,
		sel:    sel,
		params: params,
		fctx:   fctx,
		blend:  bl,
		limit:  makeLimiter(sel.Limit),
		scan:   scan,
	}, nil
}

func (rows *Rows) Columns() []sql.Identifier {
	return rows.blend.columns
}

// Next stores the next output row in dest, which must be at least
// len(Columns()) long.
func (rows *Rows) Next(ctx context.Context, dest []sql.Value) error {
	for {
		if rows.limit.exhausted(rows.rowdx) {
			return io.EOF
		}

		bctx, err := rows.scan.Next(ctx)
		if err != nil {
			return err
		}

		for jdx, jc := range rows.sel.Joins {
			bctx, err = joinChain(ctx, rows.store, rows.params, jc,
				rows.params.Joins[jdx], bctx, rows.fctx)
			if err != nil {
				return err
			}
			if bctx == nil {
				break
			}
		}
		if bctx == nil {
			continue
		}

		ok, err := filterChain(rows.params, bctx, rows.fctx, rows.sel.Where)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		rowdx := rows.rowdx
		rows.rowdx += 1
		if !rows.limit.admit(rowdx) {
			continue
		}

		row, err := rows.blend.apply(bctx)
		if err != nil {
			return err
		}
		copy(dest, row)
		return nil
	}
}

func (rows *Rows) Close() error {
	return rows.scan.Close()
}
