package stmt

import (
	"fmt"

	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
)

type JoinType int

const (
	NoJoin JoinType = iota
	Join
	InnerJoin
	LeftJoin
	LeftOuterJoin
	RightJoin
	RightOuterJoin
	FullJoin
	FullOuterJoin
	CrossJoin
)

var joinType = map[JoinType]string{
	Join:           "JOIN",
	InnerJoin:      "INNER JOIN",
	LeftJoin:       "LEFT JOIN",
	LeftOuterJoin:  "LEFT OUTER JOIN",
	RightJoin:      "RIGHT JOIN",
	RightOuterJoin: "RIGHT OUTER JOIN",
	FullJoin:       "FULL JOIN",
	FullOuterJoin:  "FULL OUTER JOIN",
	CrossJoin:      "CROSS JOIN",
}

func (jt JoinType) String() string {
	return joinType[jt]
}

// JoinRight is the right-hand side of a join clause; only JoinTable is
// executable.
type JoinRight interface {
	fmt.Stringer
	joinRight()
}

type JoinTable struct {
	TableRef
}

func (_ JoinTable) joinRight() {}

// JoinSelect is a derived table as a join target; it is part of the
// statement contract but not part of the supported fragment.
type JoinSelect struct {
	Stmt  *Select
	Alias sql.Identifier
}

func (js JoinSelect) String() string {
	return fmt.Sprintf("(%s) AS %s", js.Stmt, js.Alias)
}

func (_ JoinSelect) joinRight() {}

// JoinConstraint is the constraint of a join clause; only OnConstraint
// is executable.
type JoinConstraint interface {
	fmt.Stringer
	joinConstraint()
}

type OnConstraint struct {
	Cond expr.Expr
}

func (oc OnConstraint) String() string {
	return fmt.Sprintf("ON %s", oc.Cond)
}

func (_ OnConstraint) joinConstraint() {}

type UsingConstraint struct {
	Columns []sql.Identifier
}

func (uc UsingConstraint) String() string {
	s := "USING ("
	for i, col := range uc.Columns {
		if i > 0 {
			s += ", "
		}
		s += col.String()
	}
	s += ")"
	return s
}

func (_ UsingConstraint) joinConstraint() {}

type JoinClause struct {
	Type       JoinType
	Right      JoinRight
	Constraint JoinConstraint
}

func (jc JoinClause) String() string {
	s := fmt.Sprintf("%s %s", jc.Type, jc.Right)
	if jc.Constraint != nil {
		s += fmt.Sprintf(" %s", jc.Constraint)
	}
	return s
}
