package engine

type ColumnType string

const (
	ColumnTypeInt  ColumnType = "INT"
	ColumnTypeText ColumnType = "TEXT"
	ColumnTypeBool ColumnType = "BOOLEAN"
)

// Column is a named, typed table column. The declared type is fixed for
// the lifetime of the table.
type Column struct {
	Name string
	Type ColumnType
}
