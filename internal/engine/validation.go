package engine

// buildRow validates the supplied values against the schema and produces a
// full row: every declared column is present, columns omitted by the
// caller default to nil. Types are checked once here, at the boundary;
// scans never re-validate.
func (t *Table) buildRow(values Row) (Row, error) {
	for name := range values {
		if _, ok := t.Schema.Column(name); !ok {
			return nil, &UnknownColumnError{Table: t.Name, Column: name}
		}
	}

	row := make(Row, len(t.Schema.Columns))
	for _, col := range t.Schema.Columns {
		val, ok := values[col.Name]
		if !ok || val == nil {
			row[col.Name] = nil
			continue
		}
		normalized, err := normalizeValue(t.Name, col, val)
		if err != nil {
			return nil, err
		}
		row[col.Name] = normalized
	}
	return row, nil
}

// normalizeUpdates validates a partial field set for update: every named
// column must exist in the schema and every value must match its declared
// type. Returns the normalized copy.
func (t *Table) normalizeUpdates(updates Row) (Row, error) {
	normalized := make(Row, len(updates))
	for name, val := range updates {
		col, ok := t.Schema.Column(name)
		if !ok {
			return nil, &UnknownColumnError{Table: t.Name, Column: name}
		}
		if val == nil {
			normalized[name] = nil
			continue
		}
		nv, err := normalizeValue(t.Name, col, val)
		if err != nil {
			return nil, err
		}
		normalized[name] = nv
	}
	return normalized, nil
}

// normalizeValue checks a non-nil value against the column's declared type
// and normalizes integers to int64 (JSON numbers arrive as float64).
func normalizeValue(table string, col Column, val interface{}) (interface{}, error) {
	switch col.Type {
	case ColumnTypeInt:
		switch v := val.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
		}
	case ColumnTypeText:
		if s, ok := val.(string); ok {
			return s, nil
		}
	case ColumnTypeBool:
		if b, ok := val.(bool); ok {
			return b, nil
		}
	}
	return nil, NewTypeMismatch(table, col.Name, val, string(col.Type))
}

// normalizeConditions brings condition values into the stored
// representation (int → int64) so equality comparisons behave. Unknown
// columns are left alone: a condition on a column no row holds simply
// matches nothing, never errors.
func normalizeConditions(conditions Row) Row {
	if len(conditions) == 0 {
		return nil
	}
	normalized := make(Row, len(conditions))
	for name, val := range conditions {
		switch v := val.(type) {
		case int:
			normalized[name] = int64(v)
		case float64:
			if v == float64(int64(v)) {
				normalized[name] = int64(v)
			} else {
				normalized[name] = v
			}
		default:
			normalized[name] = val
		}
	}
	return normalized
}

// matches reports whether the row satisfies every equality in the
// conjunction. A nil condition value matches only a Null cell.
func matches(row Row, conditions Row) bool {
	for name, want := range conditions {
		if row[name] != want {
			return false
		}
	}
	return true
}
