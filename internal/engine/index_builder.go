package engine

import "log/slog"

// rebuildIndexes derives every constrained index from scratch out of the
// current row arena. Used after a reload, where it also masks any identity
// drift a legacy file may carry.
func (t *Table) rebuildIndexes() {
	for _, col := range t.Schema.ConstrainedColumns() {
		t.indexes[col] = NewIndex(col)
	}

	t.scan(func(id int64, row Row) bool {
		for _, col := range t.Schema.ConstrainedColumns() {
			val := row[col]
			if val == nil {
				continue
			}
			idx := t.indexes[col]
			if len(idx.Search(val)) > 0 {
				// A persisted file should never hold duplicates in a
				// constrained column; keep loading but make it visible.
				t.logger.Warn("duplicate value in constrained column",
					slog.String("table", t.Name),
					slog.String("column", col),
					slog.Any("value", val),
					slog.Int64("row_id", id),
				)
			}
			idx.Insert(val, id)
		}
		return true
	})

	t.logger.Debug("indexes rebuilt",
		slog.String("table", t.Name),
		slog.Int("indexed_columns", len(t.indexes)),
		slog.Int("rows", t.rows.Len()),
	)
}
