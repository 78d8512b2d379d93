package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/barangay/internal/database/migrations"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// gooseVersionTable is goose's bookkeeping table; Reset drops it so migrations replay.
const gooseVersionTable = "goose_db_version"

// AppTables lists application tables in drop order (dependents first).
var AppTables = []string{"reports", "users"}

// Migrate applies all pending migrations and returns how many ran.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	// goose needs database/sql; open a separate stdlib handle on the same config.
	sqlDB := stdlib.OpenDB(*db.Pool.Config().ConnConfig)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration failed: %w", err)
	}

	for _, r := range results {
		db.logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("duration", r.Duration.String()),
		)
	}

	return len(results), nil
}

// Reset drops every application table and replays the migrations from scratch.
func (db *DB) Reset(ctx context.Context) error {
	for _, table := range append(AppTables, gooseVersionTable) {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(table))
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	db.logger.Warn("database reset: all application tables dropped")

	if _, err := db.Migrate(ctx); err != nil {
		return err
	}
	return nil
}
