package executor

import (
	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
)

// BlendContext is one scope of the context chain built for a candidate
// output row: the driving table's row plus one scope per successful
// join, innermost scope first. Each scope exclusively owns its link to
// the outer scope; a chain is built once, consumed by the filter and
// then by the projector, and discarded.
type BlendContext struct {
	table   stmt.TableRef
	columns []sql.Identifier
	key     []byte
	row     []sql.Value
	next    *BlendContext
}

func NewBlendContext(table stmt.TableRef, columns []sql.Identifier, key []byte,
	row []sql.Value, next *BlendContext) *BlendContext {

	return &BlendContext{
		table:   table,
		columns: columns,
		key:     key,
		row:     row,
		next:    next,
	}
}

// find returns the scope for the table referenced by nam, or nil if no
// scope in the chain is for that table.
func (bctx *BlendContext) find(nam sql.Identifier) *BlendContext {
	for ; bctx != nil; bctx = bctx.next {
		if bctx.table.Name() == nam {
			return bctx
		}
	}
	return nil
}

// column returns the value of the named column in this scope alone.
func (bctx *BlendContext) column(col sql.Identifier) (sql.Value, bool) {
	for cdx, c := range bctx.columns {
		if c == col {
			return bctx.row[cdx], true
		}
	}
	return nil, false
}

// FilterContext is a read-only view of an enclosing query's context
// chain, used for correlated evaluation: a join's ON condition sees the
// driving chain through one of these, and a nested query sees its
// enclosing query's chain. It is never mutated by the evaluation it is
// passed to.
type FilterContext struct {
	table   stmt.TableRef
	columns []sql.Identifier
	row     []sql.Value
	next    *FilterContext
}

// NewFilterContext converts a context chain into a correlation chain,
// linking its outermost scope to next.
func NewFilterContext(bctx *BlendContext, next *FilterContext) *FilterContext {
	if bctx == nil {
		return next
	}
	return &FilterContext{
		table:   bctx.table,
		columns: bctx.columns,
		row:     bctx.row,
		next:    NewFilterContext(bctx.next, next),
	}
}

func (fctx *FilterContext) find(nam sql.Identifier) *FilterContext {
	for ; fctx != nil; fctx = fctx.next {
		if fctx.table.Name() == nam {
			return fctx
		}
	}
	return nil
}

func (fctx *FilterContext) column(col sql.Identifier) (sql.Value, bool) {
	for cdx, c := range fctx.columns {
		if c == col {
			return fctx.row[cdx], true
		}
	}
	return nil, false
}
