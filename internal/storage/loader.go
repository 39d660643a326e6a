package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
)

// LoadTable reads a table's document and materializes it, rebuilding every
// constrained index from the loaded rows. A missing file surfaces as the
// underlying fs.ErrNotExist so callers can map it to their not-found kind.
func (s *Store) LoadTable(name string, logger *slog.Logger) (*engine.Table, error) {
	path := s.TablePath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc TableDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse table file %s: %w", path, err)
	}

	schema, err := schemaFromDocument(name, &doc)
	if err != nil {
		return nil, err
	}

	rows := make([]engine.Row, len(doc.Rows))
	for i, raw := range doc.Rows {
		rows[i] = rowFromDocument(schema, raw)
	}

	table, err := engine.RestoreTable(name, schema, rows, doc.NextOffset, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore table %s: %w", name, err)
	}

	s.logger.Info("table loaded",
		slog.String("table", name),
		slog.String("path", path),
		slog.Int("rows", len(rows)),
	)
	return table, nil
}

// LoadMeta reads a database's metadata document.
func (s *Store) LoadMeta(dbName string) (*DatabaseMeta, error) {
	data, err := os.ReadFile(s.MetaPath(dbName))
	if err != nil {
		return nil, err
	}

	var meta DatabaseMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse database meta for %s: %w", dbName, err)
	}
	return &meta, nil
}

// ListTables returns the names of every table file present in the data
// directory, metadata documents excluded.
func (s *Store) ListTables() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.tmp") {
			continue
		}
		name = strings.TrimSuffix(name, ".json")
		if strings.HasSuffix(name, "_meta") {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// schemaFromDocument rebuilds an ordered schema from the persisted column
// map and column order.
func schemaFromDocument(table string, doc *TableDocument) (*engine.Schema, error) {
	schema := &engine.Schema{
		Columns:    make([]engine.Column, 0, len(doc.ColumnOrder)),
		UniqueCols: doc.UniqueCols,
	}
	for _, name := range doc.ColumnOrder {
		typ, ok := doc.Columns[name]
		if !ok {
			return nil, fmt.Errorf("table file for %s: column %q in column_order has no declared type", table, name)
		}
		schema.Columns = append(schema.Columns, engine.Column{
			Name: name,
			Type: engine.ColumnType(typ),
		})
	}
	if doc.PrimaryKey != nil {
		schema.PrimaryKey = *doc.PrimaryKey
	}
	return schema, nil
}

// rowFromDocument normalizes one persisted row to the in-memory value
// representation: JSON numbers arrive as float64 and become int64 in INT
// columns, columns missing from the document become Null.
func rowFromDocument(schema *engine.Schema, raw map[string]interface{}) engine.Row {
	row := make(engine.Row, len(schema.Columns))
	for _, col := range schema.Columns {
		val := raw[col.Name]
		if f, ok := val.(float64); ok && col.Type == engine.ColumnTypeInt && f == float64(int64(f)) {
			val = int64(f)
		}
		row[col.Name] = val
	}
	return row
}
