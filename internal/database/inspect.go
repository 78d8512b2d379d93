package database

import (
	"context"
	"fmt"
)

// ColumnInfo describes one column of a table, as reported by information_schema.
type ColumnInfo struct {
	Field   string  `json:"Field"`
	Type    string  `json:"Type"`
	Null    string  `json:"Null"`
	Default *string `json:"Default"`
}

// StatusCount is the number of users holding a given status value.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Ping runs a trivial query and returns its result, proving a round trip.
func (db *DB) Ping(ctx context.Context) (int, error) {
	var result int
	if err := db.Pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return 0, fmt.Errorf("database ping query failed: %w", err)
	}
	return result, nil
}

func (db *DB) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1)`,
		table,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return exists, nil
}

// DescribeTable lists a table's columns in ordinal order.
func (db *DB) DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	defer rows.Close()

	columns := make([]ColumnInfo, 0)
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Field, &c.Type, &c.Null, &c.Default); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	return columns, nil
}

// StatusCounts groups users by status.
func (db *DB) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := db.Pool.Query(ctx, `SELECT status, COUNT(*) FROM users GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, MapPostgresError(err)
	}
	defer rows.Close()

	counts := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, sc)
	}

	return counts, rows.Err()
}
