package engine

import "log/slog"

// Delete removes every row matching the conjunction conditions and returns
// the count removed. Each removed row's (value, id) pairs are deleted from
// every constrained index; because rows are keyed by permanent ID, removal
// never disturbs the identity of the rows that remain.
//
// Zero matches returns 0 without writing the table file.
func (t *Table) Delete(conditions Row) (int, error) {
	opID := NewOpID()
	conds := normalizeConditions(conditions)

	type match struct {
		id  int64
		row Row
	}
	var matched []match
	t.scan(func(id int64, row Row) bool {
		if matches(row, conds) {
			matched = append(matched, match{id: id, row: row})
		}
		return true
	})

	if len(matched) == 0 {
		return 0, nil
	}

	for _, m := range matched {
		for _, col := range t.Schema.ConstrainedColumns() {
			if val := m.row[col]; val != nil {
				t.indexes[col].Delete(val, m.id)
			}
		}
		t.rows.Delete(m.id)
	}

	if err := t.persist(); err != nil {
		return len(matched), err
	}

	t.notify(Event{Type: EventDelete, OpID: opID, Data: map[string]interface{}{
		"rows_deleted": len(matched),
	}})
	t.logger.Info("rows deleted",
		slog.String("table", t.Name),
		slog.Int("count", len(matched)),
	)
	return len(matched), nil
}
