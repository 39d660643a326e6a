package engine

// Row represents a single table row.
// Key = column name, Value = cell value (int64, string, bool, or nil).
type Row map[string]interface{}

// Copy creates an independent copy of the row to prevent mutation of
// internal state through returned results.
func (r Row) Copy() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
