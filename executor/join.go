package executor

import (
	"context"
	"io"

	"github.com/sievedb/sieve/stmt"
	"github.com/sievedb/sieve/storage"
)

// joinChain applies one join clause to a chain: a nested-loop scan of
// the join target, taking the first row in scan order whose ON
// condition is true against the candidate scope with the driving chain
// as correlation context. fctx is the enclosing query's correlation
// context; the ON condition sees it behind the driving chain. With no
// match, outer joins pass the chain through unchanged and inner joins
// drop it (nil chain, no error).
func joinChain(ctx context.Context, store storage.Store, params *SelectParams,
	jc stmt.JoinClause, jn JoinColumns, bctx *BlendContext,
	fctx *FilterContext) (*BlendContext, error) {

	oc, ok := jc.Constraint.(stmt.OnConstraint)
	if !ok {
		return nil, &UnsupportedJoinConstraintError{Constraint: jc.Constraint}
	}

	rows, err := fetchRows(ctx, store, jn.Table, jn.Columns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fctx = NewFilterContext(bctx, fctx)
	for {
		cand, err := rows.Next(ctx)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		ok, err := filterChain(params, cand, fctx, oc.Cond)
		if err != nil {
			return nil, err
		}
		if ok {
			return NewBlendContext(cand.table, cand.columns, cand.key, cand.row,
				bctx), nil
		}
	}

	switch jc.Type {
	case stmt.LeftJoin, stmt.LeftOuterJoin:
		return bctx, nil
	case stmt.Join, stmt.InnerJoin:
		return nil, nil
	}
	return nil, &UnsupportedJoinOperatorError{Type: jc.Type}
}
