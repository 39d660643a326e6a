package storage

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"testing"

	"gotest.tools/assert"

	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func usersSchema() *engine.Schema {
	return &engine.Schema{
		Columns: []engine.Column{
			{Name: "id", Type: engine.ColumnTypeInt},
			{Name: "username", Type: engine.ColumnTypeText},
			{Name: "is_active", Type: engine.ColumnTypeBool},
		},
		PrimaryKey: "id",
		UniqueCols: []string{"username"},
	}
}

func seedTable(t *testing.T, store *Store) *engine.Table {
	t.Helper()
	table, err := engine.NewTable("users", usersSchema(), testLogger())
	assert.NilError(t, err)
	table.SetStore(store)

	for _, values := range []engine.Row{
		{"id": 1, "username": "alice", "is_active": true},
		{"id": 2, "username": "bob"},
	} {
		_, err := table.Insert(values)
		assert.NilError(t, err)
	}
	return table
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())
	table := seedTable(t, store)

	loaded, err := store.LoadTable("users", testLogger())
	assert.NilError(t, err)

	assert.Equal(t, loaded.Name, "users")
	assert.DeepEqual(t, loaded.Schema.ColumnOrder(), []string{"id", "username", "is_active"})
	assert.Equal(t, loaded.Schema.PrimaryKey, "id")
	assert.DeepEqual(t, loaded.Schema.UniqueCols, []string{"username"})
	assert.Equal(t, loaded.NextOffset(), table.NextOffset())
	assert.DeepEqual(t, loaded.Rows(), table.Rows())

	// Every constrained index answers the same after the round trip.
	for _, col := range []string{"id", "username"} {
		for _, row := range table.Rows() {
			if row[col] == nil {
				continue
			}
			before, ok := table.IndexSearch(col, row[col])
			assert.Assert(t, ok)
			after, ok := loaded.IndexSearch(col, row[col])
			assert.Assert(t, ok)
			assert.DeepEqual(t, after, before)
		}
	}
}

func TestRoundTripAfterDelete(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())
	table := seedTable(t, store)

	_, err := table.Delete(engine.Row{"username": "alice"})
	assert.NilError(t, err)

	loaded, err := store.LoadTable("users", testLogger())
	assert.NilError(t, err)

	// The counter reflects rows ever inserted, not the surviving count.
	assert.Equal(t, loaded.NextOffset(), int64(2))
	assert.Equal(t, loaded.Len(), 1)

	rows := loaded.Select(nil, 0)
	assert.Equal(t, rows[0]["username"], "bob")
}

func TestTableDocumentFormat(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())
	seedTable(t, store)

	data, err := os.ReadFile(store.TablePath("users"))
	assert.NilError(t, err)

	var doc map[string]json.RawMessage
	assert.NilError(t, json.Unmarshal(data, &doc))
	for _, field := range []string{"columns", "column_order", "primary_key", "unique_cols", "rows", "next_offset"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("table document missing field %q", field)
		}
	}

	var columns map[string]string
	assert.NilError(t, json.Unmarshal(doc["columns"], &columns))
	assert.Equal(t, columns["id"], "INT")
	assert.Equal(t, columns["username"], "TEXT")
	assert.Equal(t, columns["is_active"], "BOOLEAN")

	var rows []map[string]interface{}
	assert.NilError(t, json.Unmarshal(doc["rows"], &rows))
	assert.Equal(t, len(rows), 2)
	// Row documents carry exactly the declared columns, Nulls included.
	assert.Equal(t, len(rows[1]), 3)
	assert.Equal(t, rows[1]["is_active"], nil)
}

func TestLoadTableMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())

	_, err := store.LoadTable("ghost", testLogger())
	assert.Assert(t, errors.Is(err, fs.ErrNotExist))
}

func TestDeleteWithoutMatchWritesNothing(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())
	table := seedTable(t, store)

	before, err := os.ReadFile(store.TablePath("users"))
	assert.NilError(t, err)

	count, err := table.Delete(engine.Row{"username": "ghost"})
	assert.NilError(t, err)
	assert.Equal(t, count, 0)

	after, err := os.ReadFile(store.TablePath("users"))
	assert.NilError(t, err)
	assert.DeepEqual(t, before, after)
}

func TestMetaRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())

	assert.NilError(t, store.SaveMeta("app", []string{"orders", "users"}))

	meta, err := store.LoadMeta("app")
	assert.NilError(t, err)
	assert.DeepEqual(t, meta.Tables, []string{"orders", "users"})
}

func TestListTablesSkipsMetadata(t *testing.T) {
	store := NewStore(t.TempDir(), testLogger())
	seedTable(t, store)
	assert.NilError(t, store.SaveMeta("app", []string{"users"}))

	names, err := store.ListTables()
	assert.NilError(t, err)
	assert.DeepEqual(t, names, []string{"users"})
}
