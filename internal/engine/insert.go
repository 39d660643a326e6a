package engine

import "log/slog"

// Insert adds a new row to the table and returns its assigned offset (the
// row's permanent ID).
//
// Validation happens before any mutation: unknown columns and type
// mismatches fail first, then non-Null primary-key/unique values are
// checked against the column indexes. On success the row is appended at
// the next offset, every constrained index learns the new (value, id)
// pair, and the whole table is persisted.
func (t *Table) Insert(values Row) (int64, error) {
	opID := NewOpID()

	row, err := t.buildRow(values)
	if err != nil {
		t.logger.Error("failed to insert row",
			slog.String("table", t.Name),
			slog.Any("error", err),
		)
		return 0, err
	}

	for _, col := range t.Schema.ConstrainedColumns() {
		val := row[col]
		if val == nil {
			continue
		}
		if len(t.indexes[col].Search(val)) > 0 {
			var cerr *ConstraintError
			if col == t.Schema.PrimaryKey {
				cerr = NewPrimaryKeyViolation(t.Name, col, val)
			} else {
				cerr = NewUniqueViolation(t.Name, col, val)
			}
			t.logger.Error("failed to insert row",
				slog.String("table", t.Name),
				slog.Any("error", cerr),
			)
			return 0, cerr
		}
	}

	offset := t.nextOffset
	t.rows.Insert(offset, rowSlot{id: offset, row: row})
	t.nextOffset++

	for _, col := range t.Schema.ConstrainedColumns() {
		if val := row[col]; val != nil {
			t.indexes[col].Insert(val, offset)
		}
	}

	if err := t.persist(); err != nil {
		return 0, err
	}

	t.notify(Event{Type: EventInsert, OpID: opID, Data: map[string]interface{}{
		"offset": offset,
	}})
	t.logger.Info("row inserted",
		slog.String("table", t.Name),
		slog.Int64("offset", offset),
	)
	return offset, nil
}
