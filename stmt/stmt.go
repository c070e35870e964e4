// Package stmt is the parsed statement representation consumed by the
// executor; it is produced by an external parser and treated as already
// validated syntax.
package stmt

import (
	"fmt"

	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
)

type TableRef struct {
	Table sql.Identifier
	Alias sql.Identifier
}

// Name is the identifier qualified column references resolve against:
// the alias when one was given, otherwise the table name.
func (tr TableRef) Name() sql.Identifier {
	if tr.Alias != 0 {
		return tr.Alias
	}
	return tr.Table
}

func (tr TableRef) String() string {
	s := tr.Table.String()
	if tr.Alias != 0 {
		s += fmt.Sprintf(" AS %s", tr.Alias)
	}
	return s
}

type SelectField interface {
	fmt.Stringer
	selectField()
}

// Wildcard is the bare * field.
type Wildcard struct{}

func (_ Wildcard) String() string {
	return "*"
}

func (_ Wildcard) selectField() {}

// TableWildcard is a table.* field.
type TableWildcard struct {
	Table sql.Identifier
}

func (tw TableWildcard) String() string {
	return fmt.Sprintf("%s.*", tw.Table)
}

func (_ TableWildcard) selectField() {}

// ExprField is a column reference or expression field with an optional
// alias.
type ExprField struct {
	Expr  expr.Expr
	Alias sql.Identifier
}

func (ef ExprField) String() string {
	s := ef.Expr.String()
	if ef.Alias != 0 {
		s += fmt.Sprintf(" AS %s", ef.Alias)
	}
	return s
}

func (_ ExprField) selectField() {}

// Column is the output column name for the field at index idx.
func (ef ExprField) Column(idx int) sql.Identifier {
	col := ef.Alias
	if col == 0 {
		if ref, ok := ef.Expr.(expr.Ref); ok && (len(ref) == 1 || len(ref) == 2) {
			// [ table '.' ] column
			if len(ref) == 1 {
				col = ref[0]
			} else {
				col = ref[1]
			}
		} else if call, ok := ef.Expr.(*expr.Call); ok {
			col = call.Name
		} else {
			col = sql.ID(fmt.Sprintf("expr%d", idx+1))
		}
	}
	return col
}

type LimitClause struct {
	Count  *int64
	Offset *int64
}

func (lc *LimitClause) String() string {
	var s string
	if lc.Count != nil {
		s = fmt.Sprintf("LIMIT %d", *lc.Count)
	}
	if lc.Offset != nil {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("OFFSET %d", *lc.Offset)
	}
	return s
}

type Select struct {
	Tables []TableRef
	Joins  []JoinClause
	Where  expr.Expr
	Limit  *LimitClause
	Fields []SelectField
}

func (stmt *Select) String() string {
	s := "SELECT "
	if stmt.Fields == nil {
		s += "*"
	} else {
		for i, sf := range stmt.Fields {
			if i > 0 {
				s += ", "
			}
			s += sf.String()
		}
	}
	if len(stmt.Tables) > 0 {
		s += " FROM "
		for i, tr := range stmt.Tables {
			if i > 0 {
				s += ", "
			}
			s += tr.String()
		}
	}
	for _, jc := range stmt.Joins {
		s += fmt.Sprintf(" %s", jc)
	}
	if stmt.Where != nil {
		s += fmt.Sprintf(" WHERE %s", stmt.Where)
	}
	if stmt.Limit != nil {
		s += fmt.Sprintf(" %s", stmt.Limit)
	}
	return s
}
