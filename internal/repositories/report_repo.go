package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reportColumns = `id, user_id, author_name, author_type, title, content, location, image_url, alert, created_at`

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{pool: db.Pool}
}

func scanReportRow(scanner rowScanner) (*models.Report, error) {
	var rep models.Report

	err := scanner.Scan(
		&rep.ID, &rep.UserID, &rep.AuthorName, &rep.AuthorType, &rep.Title,
		&rep.Content, &rep.Location, &rep.ImageURL, &rep.Alert, &rep.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) (*models.Report, error) {
	if rep.AuthorType == "" {
		rep.AuthorType = models.AuthorCitizen
	}

	query := `
		INSERT INTO reports (user_id, author_name, author_type, title, content, location, image_url, alert)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + reportColumns

	return scanReportRow(r.pool.QueryRow(ctx, query,
		rep.UserID, rep.AuthorName, rep.AuthorType, rep.Title,
		rep.Content, rep.Location, rep.ImageURL, rep.Alert,
	))
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	return scanReportRow(r.pool.QueryRow(ctx, query, id))
}

// List returns the whole feed, newest first.
func (r *ReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", database.MapPostgresError(err))
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		rep, err := scanReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
