package engine

import "fmt"

// Schema describes a table's columns in display order, its optional
// primary key, and its additional unique columns.
type Schema struct {
	Columns    []Column
	PrimaryKey string // empty means no primary key
	UniqueCols []string
}

// Column returns the declared column with the given name.
func (s *Schema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnOrder returns the declared column names in display order.
func (s *Schema) ColumnOrder() []string {
	order := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		order[i] = col.Name
	}
	return order
}

// ConstrainedColumns returns the columns that carry a uniqueness
// constraint: the primary key (if any) followed by the unique columns,
// without duplicates.
func (s *Schema) ConstrainedColumns() []string {
	var cols []string
	seen := make(map[string]bool)
	if s.PrimaryKey != "" {
		cols = append(cols, s.PrimaryKey)
		seen[s.PrimaryKey] = true
	}
	for _, col := range s.UniqueCols {
		if !seen[col] {
			cols = append(cols, col)
			seen[col] = true
		}
	}
	return cols
}

// Validate checks that the schema is internally consistent: at least one
// column, no duplicate names, known types, and constraint columns that
// actually exist.
func (s *Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema must declare at least one column")
	}

	seen := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("schema contains a column with an empty name")
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true

		switch col.Type {
		case ColumnTypeInt, ColumnTypeText, ColumnTypeBool:
		default:
			return fmt.Errorf("unknown type %q for column %q", col.Type, col.Name)
		}
	}

	if s.PrimaryKey != "" && !seen[s.PrimaryKey] {
		return fmt.Errorf("primary key column %q is not declared in the schema", s.PrimaryKey)
	}
	for _, col := range s.UniqueCols {
		if !seen[col] {
			return fmt.Errorf("unique column %q is not declared in the schema", col)
		}
	}
	return nil
}
