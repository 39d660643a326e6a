package engine

import "log/slog"

// Update merges the partial field set updates into every row matching the
// conjunction conditions, in insert order, and returns the count of rows
// updated.
//
// Before touching a row, each constrained column present in updates whose
// new value differs from the row's current value is checked against its
// index; a collision fails with a unique violation and stops the call.
// Rows updated earlier in the same scan stay updated — there is no
// cross-row atomicity — and nothing is persisted on that path. On success
// the table is persisted once if any row changed.
func (t *Table) Update(conditions, updates Row) (int, error) {
	opID := NewOpID()

	ups, err := t.normalizeUpdates(updates)
	if err != nil {
		t.logger.Error("failed to update table",
			slog.String("table", t.Name),
			slog.Any("error", err),
		)
		return 0, err
	}
	conds := normalizeConditions(conditions)

	updated := 0
	var opErr error
	t.scan(func(id int64, row Row) bool {
		if !matches(row, conds) {
			return true
		}

		for _, col := range t.Schema.ConstrainedColumns() {
			newVal, present := ups[col]
			if !present || newVal == nil || newVal == row[col] {
				continue
			}
			// The row still holds its old value, so any hit belongs to
			// another row.
			if len(t.indexes[col].Search(newVal)) > 0 {
				opErr = NewUniqueViolation(t.Name, col, newVal)
				return false
			}
		}

		for col, newVal := range ups {
			oldVal := row[col]
			row[col] = newVal

			idx, constrained := t.indexes[col]
			if !constrained || oldVal == newVal {
				continue
			}
			if oldVal != nil {
				idx.Delete(oldVal, id)
			}
			if newVal != nil {
				idx.Insert(newVal, id)
			}
		}
		updated++
		return true
	})

	if opErr != nil {
		t.logger.Error("failed to update table",
			slog.String("table", t.Name),
			slog.Int("rows_updated_before_failure", updated),
			slog.Any("error", opErr),
		)
		return updated, opErr
	}

	if updated > 0 {
		if err := t.persist(); err != nil {
			return updated, err
		}
		t.notify(Event{Type: EventUpdate, OpID: opID, Data: map[string]interface{}{
			"rows_updated": updated,
		}})
		t.logger.Info("rows updated",
			slog.String("table", t.Name),
			slog.Int("count", updated),
		)
	}
	return updated, nil
}
