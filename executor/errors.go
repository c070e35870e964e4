package executor

import (
	"fmt"

	"github.com/sievedb/sieve/expr"
	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/stmt"
)

// StorageUnavailableError wraps a storage failure while resolving a
// table's schema or scanning its rows.
type StorageUnavailableError struct {
	Table sql.Identifier
	Err   error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("executor: table %s unavailable: %s", e.Table, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// UnsupportedStatementError is a statement shape outside the supported
// fragment, such as multiple tables in FROM or a derived table as a
// join target.
type UnsupportedStatementError struct {
	Reason string
}

func (e *UnsupportedStatementError) Error() string {
	return fmt.Sprintf("executor: unsupported statement: %s", e.Reason)
}

// UnsupportedJoinConstraintError is a join constraint other than ON.
type UnsupportedJoinConstraintError struct {
	Constraint stmt.JoinConstraint
}

func (e *UnsupportedJoinConstraintError) Error() string {
	if e.Constraint == nil {
		return "executor: join requires an ON constraint"
	}
	return fmt.Sprintf("executor: unsupported join constraint: %s", e.Constraint)
}

// UnsupportedJoinOperatorError is a join operator other than JOIN,
// INNER JOIN, LEFT JOIN, or LEFT OUTER JOIN.
type UnsupportedJoinOperatorError struct {
	Type stmt.JoinType
}

func (e *UnsupportedJoinOperatorError) Error() string {
	return fmt.Sprintf("executor: unsupported join operator: %s", e.Type)
}

// ColumnNotFoundError is a reference that resolves to no table in the
// query.
type ColumnNotFoundError struct {
	Ref expr.Ref
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("executor: column %s not found", e.Ref)
}

// TypeMismatchError is a WHERE or ON condition that evaluated to a
// non-boolean value.
type TypeMismatchError struct {
	Want  string
	Value sql.Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("executor: want %s got %s", e.Want, sql.Format(e.Value))
}
