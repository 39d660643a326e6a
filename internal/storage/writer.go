package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
)

// Store reads and writes table documents and database metadata under a
// single data directory. It implements engine.Store.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. A nil logger falls back to
// slog.Default().
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// TablePath returns the file path for a table, derived deterministically
// from its name.
func (s *Store) TablePath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// MetaPath returns the file path for a database's metadata document.
func (s *Store) MetaPath(dbName string) string {
	return filepath.Join(s.dir, dbName+"_meta.json")
}

// SaveTable rewrites the table's whole document: schema, rows in insert
// order, and insert counter.
func (s *Store) SaveTable(t *engine.Table) error {
	doc := TableDocument{
		Columns:     make(map[string]string, len(t.Schema.Columns)),
		ColumnOrder: t.Schema.ColumnOrder(),
		UniqueCols:  make([]string, 0, len(t.Schema.UniqueCols)),
		NextOffset:  t.NextOffset(),
	}
	for _, col := range t.Schema.Columns {
		doc.Columns[col.Name] = string(col.Type)
	}
	if pk := t.Schema.PrimaryKey; pk != "" {
		doc.PrimaryKey = &pk
	}
	doc.UniqueCols = append(doc.UniqueCols, t.Schema.UniqueCols...)

	rows := t.Rows()
	doc.Rows = make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		doc.Rows[i] = row
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", t.Name, err)
	}

	path := s.TablePath(t.Name)
	if err := s.writeAtomic(path, data); err != nil {
		return err
	}

	s.logger.Debug("table saved",
		slog.String("table", t.Name),
		slog.String("path", path),
		slog.Int("row_count", len(rows)),
		slog.Int64("next_offset", doc.NextOffset),
	)
	return nil
}

// SaveMeta rewrites the database metadata document with the given table
// names.
func (s *Store) SaveMeta(dbName string, tables []string) error {
	meta := DatabaseMeta{Tables: tables}
	if meta.Tables == nil {
		meta.Tables = []string{}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal database meta for %s: %w", dbName, err)
	}

	path := s.MetaPath(dbName)
	if err := s.writeAtomic(path, data); err != nil {
		return err
	}

	s.logger.Debug("database metadata saved",
		slog.String("database", dbName),
		slog.String("path", path),
		slog.Int("table_count", len(meta.Tables)),
	)
	return nil
}

// writeAtomic writes to a temp file then renames over the target so a
// failed write never leaves a truncated document behind.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file into %s: %w", path, err)
	}
	return nil
}
