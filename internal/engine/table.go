package engine

import (
	"fmt"
	"log/slog"
	"time"

	sorted "github.com/tobshub/go-sortedmap"
)

// Store persists a table's whole document. The storage package provides
// the file-backed implementation; a nil store keeps the table in memory
// only (used by tests).
type Store interface {
	SaveTable(t *Table) error
}

// rowSlot pairs a row with its permanent ID so the arena can keep rows in
// insert order.
type rowSlot struct {
	id  int64
	row Row
}

func rowSlotLess(a, b rowSlot) bool {
	return a.id < b.id
}

// Table owns a schema, a row arena keyed by permanent row ID, one index
// per constrained column, and persistence of the whole table document.
//
// Row IDs come from a monotonic counter and are never reused, so indexes
// stay valid across deletions: removing a row removes its key without
// shifting any other row's identity.
type Table struct {
	Name   string
	Schema *Schema

	rows       *sorted.SortedMap[int64, rowSlot]
	indexes    map[string]*Index
	nextOffset int64

	store     Store
	logger    *slog.Logger
	observers []Observer
}

// NewTable creates an empty table for the given schema, with one index per
// primary-key/unique column.
func NewTable(name string, schema *Schema, logger *slog.Logger) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema for table %q: %w", name, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{
		Name:    name,
		Schema:  schema,
		rows:    sorted.New[int64, rowSlot](0, rowSlotLess),
		indexes: make(map[string]*Index),
		logger:  logger,
	}
	for _, col := range schema.ConstrainedColumns() {
		t.indexes[col] = NewIndex(col)
	}

	logger.Info("table initialized",
		slog.String("table", name),
		slog.Any("columns", schema.ColumnOrder()),
	)
	return t, nil
}

// RestoreTable materializes a table from previously persisted parts. Rows
// are assigned fresh IDs 0..n-1 in list order and every constrained index
// is rebuilt from them; this re-derivation is what reconciles identity
// after a reload.
func RestoreTable(name string, schema *Schema, rows []Row, nextOffset int64, logger *slog.Logger) (*Table, error) {
	t, err := NewTable(name, schema, logger)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		id := int64(i)
		t.rows.Insert(id, rowSlot{id: id, row: row})
	}
	if nextOffset < int64(len(rows)) {
		// An under-reporting counter would hand out IDs already in use.
		nextOffset = int64(len(rows))
	}
	t.nextOffset = nextOffset
	t.rebuildIndexes()

	return t, nil
}

// SetStore attaches the persistence backend. Mutating operations write the
// whole table document through it.
func (t *Table) SetStore(store Store) {
	t.store = store
}

// AddObserver registers an observer to receive operation events.
func (t *Table) AddObserver(observer Observer) {
	t.observers = append(t.observers, observer)
}

// RemoveObserver unregisters an observer.
func (t *Table) RemoveObserver(observer Observer) {
	for i, o := range t.observers {
		if o == observer {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers.
func (t *Table) notify(event Event) {
	event.Timestamp = time.Now()
	event.Table = t.Name
	for _, observer := range t.observers {
		observer.OnEvent(event)
	}
}

// Len returns the current number of rows.
func (t *Table) Len() int {
	return t.rows.Len()
}

// NextOffset returns the insert counter: the number of rows ever inserted,
// not decremented on delete.
func (t *Table) NextOffset() int64 {
	return t.nextOffset
}

// Rows returns independent copies of all rows in insert order.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, t.rows.Len())
	t.scan(func(_ int64, row Row) bool {
		rows = append(rows, row.Copy())
		return true
	})
	return rows
}

// IndexSearch returns the row IDs the named constrained column's index
// holds for the value. The second result is false when the column carries
// no index.
func (t *Table) IndexSearch(column string, value interface{}) ([]int64, bool) {
	idx, ok := t.indexes[column]
	if !ok {
		return nil, false
	}
	if col, declared := t.Schema.Column(column); declared {
		if normalized, err := normalizeValue(t.Name, col, value); err == nil {
			value = normalized
		}
	}
	return idx.Search(value), true
}

// scan calls fn for each row in insert order until fn returns false. The
// iterator channel is always drained so the arena is left ready for the
// next operation.
func (t *Table) scan(fn func(id int64, row Row) bool) {
	iter, err := t.rows.IterCh()
	if err != nil {
		return // empty table
	}
	stopped := false
	for rec := range iter.Records() {
		if stopped {
			continue
		}
		if !fn(rec.Key, rec.Val.row) {
			stopped = true
		}
	}
}

// persist rewrites the whole table document. Mutations that reach this
// point are already applied in memory; a write failure propagates to the
// caller unmodified beyond wrapping.
func (t *Table) persist() error {
	if t.store == nil {
		return nil
	}
	if err := t.store.SaveTable(t); err != nil {
		t.logger.Error("failed to save table",
			slog.String("table", t.Name),
			slog.Any("error", err),
		)
		return fmt.Errorf("save table %q: %w", t.Name, err)
	}
	return nil
}
