package executor

import (
	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
)

// evalContext resolves column references against a context chain and an
// optional correlation chain. Resolution walks the chain outward from
// the innermost scope, then the correlation chain; a reference to a
// table or column the query knows but the chain lacks (an unmatched
// outer join) resolves to NULL.
type evalContext struct {
	params *SelectParams
	bctx   *BlendContext
	fctx   *FilterContext
}

func (ectx *evalContext) EvalRef(r expr.Ref) (sql.Value, error) {
	if len(r) == 2 {
		return ectx.evalQualifiedRef(r)
	}

	col := r[0]
	for bctx := ectx.bctx; bctx != nil; bctx = bctx.next {
		if val, ok := bctx.column(col); ok {
			return val, nil
		}
	}
	for fctx := ectx.fctx; fctx != nil; fctx = fctx.next {
		if val, ok := fctx.column(col); ok {
			return val, nil
		}
	}
	if ectx.params.hasColumn(col) {
		return nil, nil
	}
	return nil, &ColumnNotFoundError{Ref: r}
}

func (ectx *evalContext) evalQualifiedRef(r expr.Ref) (sql.Value, error) {
	nam, col := r[0], r[1]

	if bctx := ectx.bctx.find(nam); bctx != nil {
		if val, ok := bctx.column(col); ok {
			return val, nil
		}
		return nil, &ColumnNotFoundError{Ref: r}
	}
	if fctx := ectx.fctx.find(nam); fctx != nil {
		if val, ok := fctx.column(col); ok {
			return val, nil
		}
		return nil, &ColumnNotFoundError{Ref: r}
	}
	if ectx.params.hasTable(nam) {
		return nil, nil
	}
	return nil, &ColumnNotFoundError{Ref: r}
}

// filterChain evaluates cond against a completed chain; a nil cond
// admits every row and a NULL result rejects without error. A
// non-boolean result is a TypeMismatchError.
func filterChain(params *SelectParams, bctx *BlendContext, fctx *FilterContext,
	cond expr.Expr) (bool, error) {

	if cond == nil {
		return true, nil
	}
	val, err := cond.Eval(&evalContext{
		params: params,
		bctx:   bctx,
		fctx:   fctx,
	})
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, nil
	}
	b, ok := val.(sql.BoolValue)
	if !ok {
		return false, &TypeMismatchError{Want: "boolean", Value: val}
	}
	return bool(b), nil
}
