package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, first_name, email, password_hash, status, role, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning user rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.FirstName, &user.Email, &user.PasswordHash,
		&user.Status, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// Create inserts a user. A duplicate email yields models.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Role == "" {
		user.Role = models.RoleCitizen
	}
	if user.Status == "" {
		user.Status = models.StatusPending
	}

	query := `
		INSERT INTO users (first_name, email, password_hash, status, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.FirstName, user.Email, user.PasswordHash, user.Status, user.Role,
	))
}

// CreateIfAbsent inserts a user unless the email is taken. It reports whether a row was written.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (first_name, email, password_hash, status, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		user.FirstName, user.Email, user.PasswordHash, user.Status, user.Role,
	)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

// GetAdminByEmail matches email and role=admin in a single lookup.
func (r *UserRepository) GetAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2`
	return scanUserRow(r.pool.QueryRow(ctx, query, email, models.RoleAdmin))
}

// UpdateStatus sets the status of one user and returns the number of rows
// that actually changed. Writing the current value again affects zero rows.
func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	query := `UPDATE users SET status = $1 WHERE id = $2 AND status <> $1`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return tag.RowsAffected(), nil
}

// ListByStatus returns users holding status, newest id first.
func (r *UserRepository) ListByStatus(ctx context.Context, status string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", database.MapPostgresError(err))
	}

	return scanUserRows(rows)
}

// List returns every user, newest id first.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", database.MapPostgresError(err))
	}

	return scanUserRows(rows)
}
