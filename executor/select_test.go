package executor_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sievedb/sieve/executor"
	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
	"github.com/sievedb/sieve/storage"
	"github.com/sievedb/sieve/storage/memkv"
	"github.com/sievedb/sieve/testutil"
)

func makeStore(t *testing.T) *memkv.Store {
	t.Helper()

	st := memkv.NewStore()
	tables := []struct {
		tbl  sql.Identifier
		cols []sql.Identifier
		rows [][]sql.Value
	}{
		{
			tbl:  sql.ID("t1"),
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.StringValue("a")},
				{sql.Int64Value(2), sql.StringValue("b")},
				{sql.Int64Value(3), sql.StringValue("c")},
			},
		},
		{
			tbl:  sql.ID("t2"),
			cols: []sql.Identifier{sql.ID("id"), sql.ID("v")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.Int64Value(10)},
				{sql.Int64Value(3), sql.Int64Value(30)},
				{sql.Int64Value(3), sql.Int64Value(31)},
			},
		},
		{
			tbl:  sql.ID("t3"),
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name")},
			rows: [][]sql.Value{
				{sql.Int64Value(9), sql.StringValue("x")},
			},
		},
		{
			tbl:  sql.ID("nums"),
			cols: []sql.Identifier{sql.ID("n")},
			rows: [][]sql.Value{
				{sql.Int64Value(1)},
				{sql.Int64Value(2)},
				{sql.Int64Value(3)},
				{sql.Int64Value(4)},
				{sql.Int64Value(5)},
			},
		},
	}
	for _, tt := range tables {
		if err := st.CreateTable(tt.tbl, tt.cols); err != nil {
			t.Fatal(err)
		}
		for _, row := range tt.rows {
			if err := st.Insert(tt.tbl, row); err != nil {
				t.Fatal(err)
			}
		}
	}
	return st
}

func allRows(ctx context.Context, st storage.Store, sel *stmt.Select,
	fctx *executor.FilterContext) ([]sql.Identifier, [][]sql.Value, error) {

	rows, err := executor.Select(ctx, st, sel, fctx)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols := rows.Columns()
	var all [][]sql.Value
	for {
		dest := make([]sql.Value, len(cols))
		err = rows.Next(ctx, dest)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, err
		}
		all = append(all, dest)
	}
	return cols, all, nil
}

func onEqual(ltbl, lcol, rtbl, rcol string) stmt.OnConstraint {
	return stmt.OnConstraint{
		Cond: &expr.Binary{
			Op:    expr.EqualOp,
			Left:  expr.Ref{sql.ID(ltbl), sql.ID(lcol)},
			Right: expr.Ref{sql.ID(rtbl), sql.ID(rcol)},
		},
	}
}

func joinTable(jt stmt.JoinType, tbl string, jc stmt.JoinConstraint) stmt.JoinClause {
	return stmt.JoinClause{
		Type:       jt,
		Right:      stmt.JoinTable{TableRef: stmt.TableRef{Table: sql.ID(tbl)}},
		Constraint: jc,
	}
}

func i64(i int64) *int64 {
	return &i
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	st := makeStore(t)

	cases := []struct {
		sel  *stmt.Select
		cols []sql.Identifier
		rows [][]sql.Value
	}{
		{
			// Scan order and count of the driving table are preserved.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
			},
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.StringValue("a")},
				{sql.Int64Value(2), sql.StringValue("b")},
				{sql.Int64Value(3), sql.StringValue("c")},
			},
		},
		{
			// Inner join: unmatched rows drop; a row with two matches
			// joins only the first match in scan order.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.InnerJoin, "t2", onEqual("t1", "id", "t2", "id")),
				},
			},
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name"), sql.ID("id"),
				sql.ID("v")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.StringValue("a"), sql.Int64Value(1),
					sql.Int64Value(10)},
				{sql.Int64Value(3), sql.StringValue("c"), sql.Int64Value(3),
					sql.Int64Value(30)},
			},
		},
		{
			// Left outer join: unmatched rows survive with NULLs for the
			// join target's columns.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.LeftOuterJoin, "t2",
						onEqual("t1", "id", "t2", "id")),
				},
			},
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name"), sql.ID("id"),
				sql.ID("v")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.StringValue("a"), sql.Int64Value(1),
					sql.Int64Value(10)},
				{sql.Int64Value(2), sql.StringValue("b"), nil, nil},
				{sql.Int64Value(3), sql.StringValue("c"), sql.Int64Value(3),
					sql.Int64Value(30)},
			},
		},
		{
			// WHERE runs after the joins: requiring the joined column
			// rejects the unmatched left join row.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.LeftJoin, "t2", onEqual("t1", "id", "t2", "id")),
				},
				Where: &expr.Binary{
					Op:    expr.GreaterThanOp,
					Left:  expr.Ref{sql.ID("t2"), sql.ID("v")},
					Right: expr.Int64Literal(5),
				},
			},
			cols: []sql.Identifier{sql.ID("id"), sql.ID("name"), sql.ID("id"),
				sql.ID("v")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.StringValue("a"), sql.Int64Value(1),
					sql.Int64Value(10)},
				{sql.Int64Value(3), sql.StringValue("c"), sql.Int64Value(3),
					sql.Int64Value(30)},
			},
		},
		{
			// An unmatched join target's column is NULL, not an error.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.LeftJoin, "t2", onEqual("t1", "id", "t2", "id")),
				},
				Where: &expr.Call{
					Name: sql.ID("is_null"),
					Args: []expr.Expr{expr.Ref{sql.ID("t2"), sql.ID("v")}},
				},
				Fields: []stmt.SelectField{
					stmt.ExprField{Expr: expr.Ref{sql.ID("t1"), sql.ID("name")}},
				},
			},
			cols: []sql.Identifier{sql.ID("name")},
			rows: [][]sql.Value{
				{sql.StringValue("b")},
			},
		},
		{
			// An unqualified ambiguous column resolves to the innermost
			// scope, which is the most recently joined table; a qualified
			// reference still reaches the outer scope.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.InnerJoin, "t3",
						stmt.OnConstraint{Cond: expr.True()}),
				},
				Fields: []stmt.SelectField{
					stmt.ExprField{Expr: expr.Ref{sql.ID("name")}},
					stmt.ExprField{Expr: expr.Ref{sql.ID("t1"), sql.ID("name")},
						Alias: sql.ID("outer_name")},
				},
				Limit: &stmt.LimitClause{Count: i64(2)},
			},
			cols: []sql.Identifier{sql.ID("name"), sql.ID("outer_name")},
			rows: [][]sql.Value{
				{sql.StringValue("x"), sql.StringValue("a")},
				{sql.StringValue("x"), sql.StringValue("b")},
			},
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.InnerJoin, "t2", onEqual("t1", "id", "t2", "id")),
				},
				Fields: []stmt.SelectField{
					stmt.TableWildcard{Table: sql.ID("t2")},
				},
			},
			cols: []sql.Identifier{sql.ID("id"), sql.ID("v")},
			rows: [][]sql.Value{
				{sql.Int64Value(1), sql.Int64Value(10)},
				{sql.Int64Value(3), sql.Int64Value(30)},
			},
		},
		{
			// LIMIT 2 OFFSET 1 over five admitted rows yields admitted
			// ordinals 1 and 2.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("nums")}},
				Limit:  &stmt.LimitClause{Count: i64(2), Offset: i64(1)},
			},
			cols: []sql.Identifier{sql.ID("n")},
			rows: [][]sql.Value{
				{sql.Int64Value(2)},
				{sql.Int64Value(3)},
			},
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("nums")}},
				Limit:  &stmt.LimitClause{Offset: i64(3)},
			},
			cols: []sql.Identifier{sql.ID("n")},
			rows: [][]sql.Value{
				{sql.Int64Value(4)},
				{sql.Int64Value(5)},
			},
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("nums")}},
				Limit:  &stmt.LimitClause{Count: i64(2)},
			},
			cols: []sql.Identifier{sql.ID("n")},
			rows: [][]sql.Value{
				{sql.Int64Value(1)},
				{sql.Int64Value(2)},
			},
		},
		{
			// The offset counts admitted rows, not scanned rows.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("nums")}},
				Where: &expr.Binary{
					Op:    expr.GreaterThanOp,
					Left:  expr.Ref{sql.ID("n")},
					Right: expr.Int64Literal(2),
				},
				Limit: &stmt.LimitClause{Count: i64(2), Offset: i64(1)},
			},
			cols: []sql.Identifier{sql.ID("n")},
			rows: [][]sql.Value{
				{sql.Int64Value(4)},
				{sql.Int64Value(5)},
			},
		},
		{
			// Table aliases participate in qualified resolution.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1"), Alias: sql.ID("a")}},
				Where: &expr.Binary{
					Op:    expr.EqualOp,
					Left:  expr.Ref{sql.ID("a"), sql.ID("id")},
					Right: expr.Int64Literal(2),
				},
				Fields: []stmt.SelectField{
					stmt.ExprField{Expr: expr.Ref{sql.ID("a"), sql.ID("name")}},
				},
			},
			cols: []sql.Identifier{sql.ID("name")},
			rows: [][]sql.Value{
				{sql.StringValue("b")},
			},
		},
		{
			// Expression fields; the unaliased one names itself expr2.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Fields: []stmt.SelectField{
					stmt.ExprField{
						Expr: &expr.Binary{
							Op:    expr.MultiplyOp,
							Left:  expr.Ref{sql.ID("id")},
							Right: expr.Int64Literal(2),
						},
						Alias: sql.ID("double"),
					},
					stmt.ExprField{
						Expr: &expr.Binary{
							Op:    expr.AddOp,
							Left:  expr.Ref{sql.ID("id")},
							Right: expr.Int64Literal(1),
						},
					},
				},
				Limit: &stmt.LimitClause{Count: i64(1)},
			},
			cols: []sql.Identifier{sql.ID("double"), sql.ID("expr2")},
			rows: [][]sql.Value{
				{sql.Int64Value(2), sql.Int64Value(2)},
			},
		},
		{
			// Fields without column references evaluate once and repeat.
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Fields: []stmt.SelectField{
					stmt.ExprField{
						Expr: &expr.Binary{
							Op:    expr.AddOp,
							Left:  expr.Int64Literal(2),
							Right: expr.Int64Literal(3),
						},
						Alias: sql.ID("five"),
					},
					stmt.ExprField{Expr: expr.Ref{sql.ID("id")}},
				},
			},
			cols: []sql.Identifier{sql.ID("five"), sql.ID("id")},
			rows: [][]sql.Value{
				{sql.Int64Value(5), sql.Int64Value(1)},
				{sql.Int64Value(5), sql.Int64Value(2)},
				{sql.Int64Value(5), sql.Int64Value(3)},
			},
		},
	}

	for _, c := range cases {
		cols, rows, err := allRows(ctx, st, c.sel, nil)
		if err != nil {
			t.Errorf("Select(%s) failed with %s", c.sel, err)
			continue
		}
		if !testutil.DeepEqual(cols, c.cols) {
			t.Errorf("Select(%s) columns got %v want %v", c.sel, cols, c.cols)
		}
		if !testutil.DeepEqual(rows, c.rows) {
			t.Errorf("Select(%s) got %v want %v", c.sel, rows, c.rows)
		}
	}
}

func TestSelectConstantFields(t *testing.T) {
	ctx := context.Background()
	st := makeStore(t)

	// Evaluation of a constant field happens before any rows are
	// fetched, so the error surfaces from Select.
	sel := &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
		Fields: []stmt.SelectField{
			stmt.ExprField{
				Expr: &expr.Binary{
					Op:    expr.DivideOp,
					Left:  expr.Int64Literal(1),
					Right: expr.Int64Literal(0),
				},
			},
		},
	}
	if _, err := executor.Select(ctx, st, sel, nil); err == nil {
		t.Errorf("Select(%s) did not fail", sel)
	}

	// The caller's field list must not be modified by folding.
	add := &expr.Binary{Op: expr.AddOp, Left: expr.Int64Literal(2),
		Right: expr.Int64Literal(3)}
	sel = &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
		Fields: []stmt.SelectField{stmt.ExprField{Expr: add, Alias: sql.ID("five")}},
	}
	if _, _, err := allRows(ctx, st, sel, nil); err != nil {
		t.Fatalf("Select(%s) failed with %s", sel, err)
	}
	ef, ok := sel.Fields[0].(stmt.ExprField)
	if !ok || !ef.Expr.Equal(add) {
		t.Errorf("Select(%s) modified the field list: %v", sel, sel.Fields[0])
	}
}

func TestSelectExample(t *testing.T) {
	ctx := context.Background()

	st := memkv.NewStore()
	if err := st.CreateTable(sql.ID("x1"),
		[]sql.Identifier{sql.ID("id"), sql.ID("s")}); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateTable(sql.ID("x2"),
		[]sql.Identifier{sql.ID("id"), sql.ID("v")}); err != nil {
		t.Fatal(err)
	}
	for _, row := range [][]sql.Value{
		{sql.Int64Value(1), sql.StringValue("a")},
		{sql.Int64Value(2), sql.StringValue("b")},
	} {
		if err := st.Insert(sql.ID("x1"), row); err != nil {
			t.Fatal(err)
		}
	}
	for _, row := range [][]sql.Value{
		{sql.Int64Value(1), sql.Int64Value(10)},
		{sql.Int64Value(3), sql.Int64Value(30)},
	} {
		if err := st.Insert(sql.ID("x2"), row); err != nil {
			t.Fatal(err)
		}
	}

	sel := &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("x1")}},
		Joins: []stmt.JoinClause{
			joinTable(stmt.InnerJoin, "x2", onEqual("x1", "id", "x2", "id")),
		},
	}
	_, rows, err := allRows(ctx, st, sel, nil)
	if err != nil {
		t.Fatalf("Select(%s) failed with %s", sel, err)
	}
	want := [][]sql.Value{
		{sql.Int64Value(1), sql.StringValue("a"), sql.Int64Value(1),
			sql.Int64Value(10)},
	}
	if !testutil.DeepEqual(rows, want) {
		t.Errorf("Select(%s) got %v want %v", sel, rows, want)
	}
}

func TestSelectRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := makeStore(t)

	wild := &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
		Joins: []stmt.JoinClause{
			joinTable(stmt.InnerJoin, "t2", onEqual("t1", "id", "t2", "id")),
		},
	}
	qualified := &stmt.Select{
		Tables: wild.Tables,
		Joins:  wild.Joins,
		Fields: []stmt.SelectField{
			stmt.ExprField{Expr: expr.Ref{sql.ID("t1"), sql.ID("id")}},
			stmt.ExprField{Expr: expr.Ref{sql.ID("t1"), sql.ID("name")}},
			stmt.ExprField{Expr: expr.Ref{sql.ID("t2"), sql.ID("id")}},
			stmt.ExprField{Expr: expr.Ref{sql.ID("t2"), sql.ID("v")}},
		},
	}

	_, wildRows, err := allRows(ctx, st, wild, nil)
	if err != nil {
		t.Fatalf("Select(%s) failed with %s", wild, err)
	}
	_, qualRows, err := allRows(ctx, st, qualified, nil)
	if err != nil {
		t.Fatalf("Select(%s) failed with %s", qualified, err)
	}
	if !testutil.DeepEqual(wildRows, qualRows) {
		t.Errorf("wildcard rows %v != qualified rows %v", wildRows, qualRows)
	}
}

func TestSelectCorrelated(t *testing.T) {
	ctx := context.Background()
	st := makeStore(t)

	outer := executor.NewBlendContext(
		stmt.TableRef{Table: sql.ID("outer_t")},
		[]sql.Identifier{sql.ID("oid")}, nil,
		[]sql.Value{sql.Int64Value(3)}, nil)
	fctx := executor.NewFilterContext(outer, nil)

	sel := &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("nums")}},
		Where: &expr.Binary{
			Op:    expr.EqualOp,
			Left:  expr.Ref{sql.ID("n")},
			Right: expr.Ref{sql.ID("outer_t"), sql.ID("oid")},
		},
	}
	_, rows, err := allRows(ctx, st, sel, fctx)
	if err != nil {
		t.Fatalf("Select(%s) failed with %s", sel, err)
	}
	want := [][]sql.Value{
		{sql.Int64Value(3)},
	}
	if !testutil.DeepEqual(rows, want) {
		t.Errorf("Select(%s) got %v want %v", sel, rows, want)
	}

	// A join's ON condition also sees the enclosing query's context.
	sel = &stmt.Select{
		Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
		Joins: []stmt.JoinClause{
			joinTable(stmt.InnerJoin, "t2",
				stmt.OnConstraint{
					Cond: &expr.Binary{
						Op:    expr.EqualOp,
						Left:  expr.Ref{sql.ID("t2"), sql.ID("id")},
						Right: expr.Ref{sql.ID("outer_t"), sql.ID("oid")},
					},
				}),
		},
		Fields: []stmt.SelectField{
			stmt.ExprField{Expr: expr.Ref{sql.ID("t1"), sql.ID("id")}},
			stmt.ExprField{Expr: expr.Ref{sql.ID("t2"), sql.ID("v")}},
		},
	}
	_, rows, err = allRows(ctx, st, sel, fctx)
	if err != nil {
		t.Fatalf("Select(%s) failed with %s", sel, err)
	}
	want = [][]sql.Value{
		{sql.Int64Value(1), sql.Int64Value(30)},
		{sql.Int64Value(2), sql.Int64Value(30)},
		{sql.Int64Value(3), sql.Int64Value(30)},
	}
	if !testutil.DeepEqual(rows, want) {
		t.Errorf("Select(%s) got %v want %v", sel, rows, want)
	}
}

func TestSelectErrors(t *testing.T) {
	ctx := context.Background()
	st := makeStore(t)

	cases := []struct {
		sel   *stmt.Select
		check func(err error) bool
		want  string
	}{
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("missing")}},
			},
			check: func(err error) bool {
				var e *executor.StorageUnavailableError
				return errors.As(err, &e)
			},
			want: "StorageUnavailableError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")},
					{Table: sql.ID("t2")}},
			},
			check: func(err error) bool {
				var e *executor.UnsupportedStatementError
				return errors.As(err, &e)
			},
			want: "UnsupportedStatementError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					{
						Type: stmt.InnerJoin,
						Right: stmt.JoinSelect{
							Stmt: &stmt.Select{
								Tables: []stmt.TableRef{{Table: sql.ID("t2")}},
							},
							Alias: sql.ID("sub"),
						},
						Constraint: onEqual("t1", "id", "sub", "id"),
					},
				},
			},
			check: func(err error) bool {
				var e *executor.UnsupportedStatementError
				return errors.As(err, &e)
			},
			want: "UnsupportedStatementError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.InnerJoin, "t2",
						stmt.UsingConstraint{
							Columns: []sql.Identifier{sql.ID("id")},
						}),
				},
			},
			check: func(err error) bool {
				var e *executor.UnsupportedJoinConstraintError
				return errors.As(err, &e)
			},
			want: "UnsupportedJoinConstraintError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Joins: []stmt.JoinClause{
					joinTable(stmt.RightJoin, "t2",
						stmt.OnConstraint{Cond: expr.False()}),
				},
			},
			check: func(err error) bool {
				var e *executor.UnsupportedJoinOperatorError
				return errors.As(err, &e)
			},
			want: "UnsupportedJoinOperatorError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Where: &expr.Binary{
					Op:    expr.EqualOp,
					Left:  expr.Ref{sql.ID("xyz")},
					Right: expr.Int64Literal(1),
				},
			},
			check: func(err error) bool {
				var e *executor.ColumnNotFoundError
				return errors.As(err, &e)
			},
			want: "ColumnNotFoundError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Fields: []stmt.SelectField{
					stmt.ExprField{Expr: expr.Ref{sql.ID("t9"), sql.ID("id")}},
				},
			},
			check: func(err error) bool {
				var e *executor.ColumnNotFoundError
				return errors.As(err, &e)
			},
			want: "ColumnNotFoundError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Fields: []stmt.SelectField{
					stmt.TableWildcard{Table: sql.ID("t9")},
				},
			},
			check: func(err error) bool {
				var e *executor.ColumnNotFoundError
				return errors.As(err, &e)
			},
			want: "ColumnNotFoundError",
		},
		{
			sel: &stmt.Select{
				Tables: []stmt.TableRef{{Table: sql.ID("t1")}},
				Where: &expr.Binary{
					Op:    expr.AddOp,
					Left:  expr.Ref{sql.ID("id")},
					Right: expr.Int64Literal(1),
				},
			},
			check: func(err error) bool {
				var e *executor.TypeMismatchError
				return errors.As(err, &e)
			},
			want: "TypeMismatchError",
		},
	}

	for _, c := range cases {
		_, _, err := allRows(ctx, st, c.sel, nil)
		if err == nil {
			t.Errorf("Select(%s) did not fail", c.sel)
		} else if !c.check(err) {
			t.Errorf("Select(%s) got %v want %s", c.sel, err, c.want)
		}
	}
}
