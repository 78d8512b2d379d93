package database

import (
	"errors"

	"github.com/BradenHooton/barangay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the application reacts to
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeUndefinedTable      = "42P01"
)

// MapPostgresError translates driver errors into model sentinels.
// Unclassified errors are returned unchanged.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return models.ErrDuplicateEmail
		case codeForeignKeyViolation, codeNotNullViolation:
			return models.ErrBadRequest
		case codeCheckViolation:
			return models.ErrInvalidStatus
		}
	}

	return err
}

// IsUndefinedTable reports whether err was raised because a table does not exist yet.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}
