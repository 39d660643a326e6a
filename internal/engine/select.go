package engine

import "log/slog"

// Select returns independent copies of the rows satisfying every equality
// in conditions, in insert order. Empty or nil conditions match every row.
// A positive limit stops the scan once that many rows are collected.
//
// Select is always a full linear scan; it never consults an index and has
// no error conditions.
func (t *Table) Select(conditions Row, limit int) []Row {
	opID := NewOpID()
	conds := normalizeConditions(conditions)

	results := make([]Row, 0)
	t.scan(func(_ int64, row Row) bool {
		if !matches(row, conds) {
			return true
		}
		results = append(results, row.Copy())
		return limit <= 0 || len(results) < limit
	})

	t.notify(Event{Type: EventSelect, OpID: opID, Data: map[string]interface{}{
		"rows_returned": len(results),
	}})
	t.logger.Debug("select completed",
		slog.String("table", t.Name),
		slog.Int("rows", len(results)),
	)
	return results
}
