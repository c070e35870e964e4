package executor

import (
	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
)

// blend projects context chains into output rows per the query's field
// list. A nil field list is a bare wildcard.
type blend struct {
	params  *SelectParams
	fields  []stmt.SelectField
	columns []sql.Identifier
}

func makeBlend(params *SelectParams, fields []stmt.SelectField) (*blend, error) {
	if fields == nil {
		fields = []stmt.SelectField{stmt.Wildcard{}}
	} else {
		fields = append([]stmt.SelectField(nil), fields...)
	}

	var cols []sql.Identifier
	for fdx, sf := range fields {
		switch sf := sf.(type) {
		case stmt.Wildcard:
			cols = append(cols, params.Columns...)
			for _, jn := range params.Joins {
				cols = append(cols, jn.Columns...)
			}
		case stmt.TableWildcard:
			_, tcols, err := params.tableRef(sf.Table)
			if err != nil {
				return nil, err
			}
			cols = append(cols, tcols...)
		case stmt.ExprField:
			col := sf.Column(fdx)
			cols = append(cols, col)

			// Fold fields with no column references once, rather than
			// evaluating them again for every row.
			if !sf.Expr.HasRef() {
				val, err := sf.Expr.Eval(nil)
				if err != nil {
					return nil, err
				}
				fields[fdx] = stmt.ExprField{Expr: &expr.Literal{Value: val}, Alias: col}
			}
		}
	}

	return &blend{
		params:  params,
		fields:  fields,
		columns: cols,
	}, nil
}

// apply projects one chain into one output row. Wildcard columns come
// in driving-table-then-join-target order; a join target absent from
// the chain contributes NULLs so the row width matches Columns.
func (b *blend) apply(bctx *BlendContext) ([]sql.Value, error) {
	dest := make([]sql.Value, 0, len(b.columns))
	for _, sf := range b.fields {
		switch sf := sf.(type) {
		case stmt.Wildcard:
			dest = appendTableValues(dest, bctx, b.params.Table, b.params.Columns)
			for _, jn := range b.params.Joins {
				dest = appendTableValues(dest, bctx, jn.Table, jn.Columns)
			}
		case stmt.TableWildcard:
			tbl, cols, err := b.params.tableRef(sf.Table)
			if err != nil {
				return nil, err
			}
			dest = appendTableValues(dest, bctx, tbl, cols)
		case stmt.ExprField:
			val, err := sf.Expr.Eval(&evalContext{
				params: b.params,
				bctx:   bctx,
			})
			if err != nil {
				return nil, err
			}
			dest = append(dest, val)
		}
	}
	return dest, nil
}

func (sp *SelectParams) tableRef(nam sql.Identifier) (stmt.TableRef,
	[]sql.Identifier, error) {

	if sp.Table.Name() == nam {
		return sp.Table, sp.Columns, nil
	}
	for _, jn := range sp.Joins {
		if jn.Table.Name() == nam {
			return jn.Table, jn.Columns, nil
		}
	}
	return stmt.TableRef{}, nil, &ColumnNotFoundError{Ref: expr.Ref{nam, sql.ID("*")}}
}

func appendTableValues(dest []sql.Value, bctx *BlendContext, tbl stmt.TableRef,
	cols []sql.Identifier) []sql.Value {

	if sctx := bctx.find(tbl.Name()); sctx != nil {
		return append(dest, sctx.row...)
	}
	for range cols {
		dest = append(dest, nil)
	}
	return dest
}
