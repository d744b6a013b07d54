package rdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/liverty-music/archive-core/pkg/config"
	"github.com/pannpers/go-logging/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"
)

// Database wraps a bun connection to the embedded SQLite archive file.
type Database struct {
	DB     *bun.DB
	logger *logging.Logger
}

const pingTimeout = 5 * time.Second

// New opens the SQLite database file, configures the connection pool, and
// verifies connectivity with a ping.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Database, error) {
	sqldb, err := sql.Open("sqlite", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if cfg.IsLocal() {
		bunDB.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	// SQLite allows exactly one writer at a time; WAL mode lets readers
	// proceed concurrently with a single in-flight writer.
	if _, err := bunDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := bunDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	database := &Database{DB: bunDB, logger: logger}

	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info(ctx, "database connection established",
		slog.String("path", cfg.Database.DSN()),
		slog.Int("max_open_conns", cfg.Database.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	return database, nil
}

// Ping verifies the database connection.
func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// NewStdlibDB opens a standalone *sql.DB against the same SQLite file,
// used exclusively for running goose migrations before the pooled bun
// connection is established. The caller closes it after use.
func NewStdlibDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database for migrations: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	d.logger.Info(context.Background(), "closing database connection")
	return d.DB.Close()
}
