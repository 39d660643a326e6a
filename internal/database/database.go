package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
	"github.com/dennis-mutethia/simple-rdbms/internal/storage"
)

// Database owns a lazily populated registry of tables, the metadata file
// listing the table names it knows about, and the equality-join operator.
// A Database instance assumes a single owner; there is no cross-process
// locking.
type Database struct {
	Name string

	dataDir   string
	tables    map[string]*engine.Table
	store     *storage.Store
	logger    *slog.Logger
	observers []engine.Observer
}

// Option configures a Database at open time.
type Option func(*Database)

// WithDataDir sets the directory holding the table and metadata files.
func WithDataDir(dir string) Option {
	return func(db *Database) { db.dataDir = dir }
}

// WithLogger sets the diagnostic sink for the database and every table it
// creates or loads.
func WithLogger(logger *slog.Logger) Option {
	return func(db *Database) { db.logger = logger }
}

// WithObserver registers an observer that receives operation events from
// the database and every table it creates or loads.
func WithObserver(observer engine.Observer) Option {
	return func(db *Database) { db.observers = append(db.observers, observer) }
}

// Open creates a database handle for the given name, ensuring the data
// directory exists and reading the metadata file if one is present.
// Tables are loaded lazily via GetTable.
func Open(name string, opts ...Option) (*Database, error) {
	db := &Database{
		Name:    name,
		dataDir: "data",
		tables:  make(map[string]*engine.Table),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}

	if err := os.MkdirAll(db.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", db.dataDir, err)
	}
	db.store = storage.NewStore(db.dataDir, db.logger)

	if meta, err := db.store.LoadMeta(name); err == nil {
		db.logger.Info("database metadata loaded",
			slog.String("database", name),
			slog.Any("tables", meta.Tables),
		)
	} else if !errors.Is(err, fs.ErrNotExist) {
		db.logger.Warn("could not load database metadata",
			slog.String("database", name),
			slog.Any("error", err),
		)
	}

	db.logger.Info("database initialized",
		slog.String("database", name),
		slog.String("data_dir", db.dataDir),
	)
	return db, nil
}

// CreateTable constructs a table for the schema, registers it, records it
// in the metadata file, and persists its (empty) document.
func (db *Database) CreateTable(name string, schema *engine.Schema) (*engine.Table, error) {
	if _, exists := db.tables[name]; exists {
		return nil, &TableExistsError{Name: name}
	}

	table, err := engine.NewTable(name, schema, db.logger)
	if err != nil {
		return nil, err
	}
	db.attach(table)
	db.tables[name] = table

	if err := db.saveMeta(); err != nil {
		return nil, err
	}
	if err := db.store.SaveTable(table); err != nil {
		return nil, fmt.Errorf("failed to persist new table %q: %w", name, err)
	}

	db.notify(engine.Event{Type: engine.EventTableCreate, OpID: engine.NewOpID(), Table: name})
	db.logger.Info("table created",
		slog.String("database", db.Name),
		slog.String("table", name),
	)
	return table, nil
}

// GetTable returns the registered table, loading it from its file on first
// access. The metadata file is not rewritten here; Reconcile is the
// explicit step for that, keeping the read path free of writes.
func (db *Database) GetTable(name string) (*engine.Table, error) {
	if table, ok := db.tables[name]; ok {
		return table, nil
	}

	table, err := db.store.LoadTable(name, db.logger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TableNotFoundError{Name: name}
		}
		return nil, err
	}
	db.attach(table)
	db.tables[name] = table

	db.notify(engine.Event{Type: engine.EventTableLoad, OpID: engine.NewOpID(), Table: name})
	return table, nil
}

// Reconcile refreshes the metadata file from the union of the registered
// tables and the table files present in the data directory, picking up
// tables created by another process.
func (db *Database) Reconcile() error {
	onDisk, err := db.store.ListTables()
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(db.tables)+len(onDisk))
	for name := range db.tables {
		known[name] = true
	}
	for _, name := range onDisk {
		known[name] = true
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := db.store.SaveMeta(db.Name, names); err != nil {
		return err
	}
	db.logger.Info("database metadata reconciled",
		slog.String("database", db.Name),
		slog.Int("table_count", len(names)),
	)
	return nil
}

// TableNames returns the names of the tables registered in this process,
// sorted.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// saveMeta rewrites the metadata file with the currently registered table
// set.
func (db *Database) saveMeta() error {
	return db.store.SaveMeta(db.Name, db.TableNames())
}

// attach wires the database's store and observers into a table.
func (db *Database) attach(table *engine.Table) {
	table.SetStore(db.store)
	for _, observer := range db.observers {
		table.AddObserver(observer)
	}
}

// notify sends an event to the database's observers.
func (db *Database) notify(event engine.Event) {
	event.Timestamp = time.Now()
	for _, observer := range db.observers {
		observer.OnEvent(event)
	}
}
