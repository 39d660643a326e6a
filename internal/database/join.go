package database

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
)

// Join performs an inner equi-join between two tables using a single
// equality condition of the form "left.col = right.col" or "col = col".
// Table qualifiers are accepted but ignored beyond stripping.
//
// Matching is a nested-loop cross product over both row sequences. A Null
// on either side matches only a Null on the other. When either column is
// declared INT both values are coerced to integer for comparison, and a
// value that cannot be coerced silently excludes the pair; otherwise raw
// equality applies. Matching pairs merge into a flat row keyed
// "<table>_<column>", right side winning on collision.
func (db *Database) Join(leftName, rightName, on string) ([]engine.Row, error) {
	left, err := db.GetTable(leftName)
	if err != nil {
		return nil, err
	}
	right, err := db.GetTable(rightName)
	if err != nil {
		return nil, err
	}

	leftCol, rightCol, err := parseJoinCondition(on)
	if err != nil {
		db.logger.Error("join failed",
			slog.String("left_table", leftName),
			slog.String("right_table", rightName),
			slog.Any("error", err),
		)
		return nil, err
	}

	var leftType, rightType engine.ColumnType
	if col, ok := left.Schema.Column(leftCol); ok {
		leftType = col.Type
	}
	if col, ok := right.Schema.Column(rightCol); ok {
		rightType = col.Type
	}
	coerce := leftType == engine.ColumnTypeInt || rightType == engine.ColumnTypeInt

	leftRows := left.Rows()
	rightRows := right.Rows()

	results := make([]engine.Row, 0)
	for _, lrow := range leftRows {
		lval := lrow[leftCol]
		for _, rrow := range rightRows {
			rval := rrow[rightCol]

			if lval == nil || rval == nil {
				if lval == nil && rval == nil {
					results = append(results, mergeRows(leftName, lrow, rightName, rrow))
				}
				continue
			}

			if coerce {
				li, lok := coerceInt(lval)
				ri, rok := coerceInt(rval)
				if !lok || !rok || li != ri {
					continue
				}
			} else if lval != rval {
				continue
			}

			results = append(results, mergeRows(leftName, lrow, rightName, rrow))
		}
	}

	db.notify(engine.Event{Type: engine.EventJoin, OpID: engine.NewOpID(), Data: map[string]interface{}{
		"left_table":  leftName,
		"right_table": rightName,
		"result_rows": len(results),
	}})
	db.logger.Info("join completed",
		slog.String("left_table", leftName),
		slog.String("right_table", rightName),
		slog.Int("result_rows", len(results)),
	)
	return results, nil
}

// parseJoinCondition splits the condition at its first '=' and strips any
// table qualifier from each side.
func parseJoinCondition(on string) (string, string, error) {
	if !strings.Contains(on, "=") {
		return "", "", &MalformedConditionError{Condition: on}
	}
	parts := strings.SplitN(on, "=", 2)
	return stripQualifier(parts[0]), stripQualifier(parts[1]), nil
}

func stripQualifier(expr string) string {
	expr = strings.TrimSpace(expr)
	segments := strings.Split(expr, ".")
	return segments[len(segments)-1]
}

// coerceInt brings a cell value to int64 for comparison against an INT
// column. Text must parse as a base-10 integer; booleans count as 0/1.
func coerceInt(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// mergeRows flattens a matching pair into one row with table-prefixed
// keys.
func mergeRows(leftTable string, lrow engine.Row, rightTable string, rrow engine.Row) engine.Row {
	merged := make(engine.Row, len(lrow)+len(rrow))
	for col, val := range lrow {
		merged[leftTable+"_"+col] = val
	}
	for col, val := range rrow {
		merged[rightTable+"_"+col] = val
	}
	return merged
}
