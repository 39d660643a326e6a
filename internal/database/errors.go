package database

import "fmt"

// TableExistsError reports a create for a table name already registered in
// this process.
type TableExistsError struct {
	Name string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Name)
}

// TableNotFoundError reports a lookup for a table with no registered
// instance and no file on disk.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Name)
}

// MalformedConditionError reports a join condition missing its equality.
type MalformedConditionError struct {
	Condition string
}

func (e *MalformedConditionError) Error() string {
	return fmt.Sprintf("malformed join condition %q: must contain '='", e.Condition)
}
