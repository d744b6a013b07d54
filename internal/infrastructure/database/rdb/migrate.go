package rdb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/liverty-music/archive-core/pkg/config"
	"github.com/pannpers/go-logging/logging"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/versions/*.sql
var migrationFS embed.FS

// RunMigrations applies pending database migrations using goose v3's
// Provider API against the embedded SQLite archive file. A single
// embedded file started once at process startup needs no cross-process
// session lock, so this skips the session-locker the teacher's Postgres
// migrator used for concurrent Cloud Run revisions.
func RunMigrations(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	logger.Info(ctx, "starting database migrations")

	db, err := NewStdlibDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create migration database connection: %w", err)
	}
	defer db.Close()

	migrations, err := fs.Sub(migrationFS, "migrations/versions")
	if err != nil {
		return fmt.Errorf("failed to create migration sub-filesystem: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if len(results) == 0 {
		logger.Info(ctx, "no pending migrations to apply")
		return nil
	}

	for _, r := range results {
		logger.Info(ctx, "applied migration",
			slog.String("file", r.Source.Path),
			slog.String("duration", r.Duration.String()),
		)
	}

	logger.Info(ctx, "database migrations completed",
		slog.Int("applied", len(results)),
	)

	return nil
}
