package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ConstraintError represents a violation of a table constraint
// (unique, primary key, or type mismatch).
type ConstraintError struct {
	Table      string      // table name
	Column     string      // column name
	Value      interface{} // offending value (may be nil)
	Constraint string      // "unique", "primary_key", "type_mismatch"
	Reason     string      // human-readable explanation (optional)
}

func (e *ConstraintError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewUniqueViolation(table, column string, value interface{}) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "unique",
		Reason:     "duplicate value",
	}
}

func NewPrimaryKeyViolation(table, column string, value interface{}) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "primary_key",
		Reason:     "duplicate primary key",
	}
}

func NewTypeMismatch(table, column string, value interface{}, expectedType string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected %s, got %T", expectedType, value),
	}
}

// UnknownColumnError reports an insert or update that referenced a column
// absent from the table's schema.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q in table %q", e.Column, e.Table)
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint violation. Callers branch on this rather than matching
// message text.
func IsUniqueViolation(err error) bool {
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Constraint == "unique" || ce.Constraint == "primary_key"
}

// IsUnknownColumn reports whether err is an unknown-column error.
func IsUnknownColumn(err error) bool {
	var ue *UnknownColumnError
	return errors.As(err, &ue)
}
