package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dennis-mutethia/simple-rdbms/internal/database"
	"github.com/dennis-mutethia/simple-rdbms/internal/engine"
	"github.com/dennis-mutethia/simple-rdbms/internal/logging"
)

func main() {
	dataDir := flag.String("data", "data", "Directory for table and metadata files")
	seqURL := flag.String("seq", "", "Seq ingestion endpoint (empty disables log shipping)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger, closeFn := logging.Setup(logging.Options{
		SeqURL: *seqURL,
		Level:  level,
	})
	defer closeFn()
	slog.SetDefault(logger)

	db, err := database.Open("app",
		database.WithDataDir(*dataDir),
		database.WithLogger(logger),
		database.WithObserver(engine.NewLoggingObserver(logger)),
	)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if err := run(db); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

// run walks the engine through its operations end to end: table creation,
// constrained inserts, filtered selects, updates, deletes, and a two-table
// join.
func run(db *database.Database) error {
	slog.Info("=== Creating tables ===")

	users, err := db.CreateTable("users", &engine.Schema{
		Columns: []engine.Column{
			{Name: "id", Type: engine.ColumnTypeInt},
			{Name: "username", Type: engine.ColumnTypeText},
			{Name: "email", Type: engine.ColumnTypeText},
			{Name: "is_active", Type: engine.ColumnTypeBool},
		},
		PrimaryKey: "id",
		UniqueCols: []string{"username"},
	})
	if err != nil {
		return err
	}

	orders, err := db.CreateTable("orders", &engine.Schema{
		Columns: []engine.Column{
			{Name: "oid", Type: engine.ColumnTypeInt},
			{Name: "user_id", Type: engine.ColumnTypeInt},
			{Name: "item", Type: engine.ColumnTypeText},
		},
		PrimaryKey: "oid",
	})
	if err != nil {
		return err
	}

	slog.Info("=== Inserting rows ===")

	if _, err := users.Insert(engine.Row{"id": 1, "username": "alice", "email": "alice@example.com", "is_active": true}); err != nil {
		return err
	}
	if _, err := users.Insert(engine.Row{"id": 2, "username": "bob", "email": "bob@example.com", "is_active": true}); err != nil {
		return err
	}

	// Duplicate username must be rejected.
	if _, err := users.Insert(engine.Row{"id": 3, "username": "alice", "email": "other@example.com"}); err != nil {
		slog.Info("duplicate insert rejected as expected", "error", err)
	}

	if _, err := orders.Insert(engine.Row{"oid": 101, "user_id": 1, "item": "Book"}); err != nil {
		return err
	}
	if _, err := orders.Insert(engine.Row{"oid": 102, "user_id": 2, "item": "Pen"}); err != nil {
		return err
	}

	slog.Info("=== Selecting ===")

	for _, row := range users.Select(nil, 0) {
		slog.Info("user", "row", row)
	}
	active := users.Select(engine.Row{"is_active": true}, 1)
	slog.Info("first active user", "count", len(active))

	slog.Info("=== Updating ===")

	updated, err := users.Update(engine.Row{"username": "alice"}, engine.Row{"email": "alice@new.example.com"})
	if err != nil {
		return err
	}
	slog.Info("update applied", "rows_updated", updated)

	slog.Info("=== Joining ===")

	joined, err := db.Join("users", "orders", "users.id = orders.user_id")
	if err != nil {
		return err
	}
	for _, row := range joined {
		slog.Info("joined row",
			"user", row["users_username"],
			"item", row["orders_item"],
		)
	}

	slog.Info("=== Deleting ===")

	deleted, err := orders.Delete(engine.Row{"item": "Pen"})
	if err != nil {
		return err
	}
	slog.Info("delete applied", "rows_deleted", deleted)

	if err := db.Reconcile(); err != nil {
		return err
	}

	slog.Info("demo finished", "tables", db.TableNames())
	return nil
}
