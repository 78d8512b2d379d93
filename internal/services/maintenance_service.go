package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/models"
)

// Schema is the database surface the development tooling needs.
type Schema interface {
	Ping(ctx context.Context) (int, error)
	TableExists(ctx context.Context, table string) (bool, error)
	DescribeTable(ctx context.Context, table string) ([]database.ColumnInfo, error)
	StatusCounts(ctx context.Context) ([]database.StatusCount, error)
	Migrate(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type sampleAccount struct {
	name     string
	email    string
	password string
	status   string
	role     string
}

// sampleAccounts is the development fixture set. The first three are
// inserted by CreateUsersTable, all four by ResetDB.
var sampleAccounts = []sampleAccount{
	{"Admin User", "admin@barangay.com", "admin123", models.StatusApproved, models.RoleAdmin},
	{"Juan Dela Cruz", "juan@email.com", "password123", models.StatusApproved, models.RoleCitizen},
	{"Maria Santos", "maria@email.com", "password123", models.StatusPending, models.RoleCitizen},
	{"Pedro Reyes", "pedro@email.com", "password123", models.StatusRejected, models.RoleCitizen},
}

// DebugDBResult reports connectivity and the full user table.
type DebugDBResult struct {
	TestResult int
	TotalUsers int
	Users      []*models.User
}

// CheckTableResult describes the users table, if it exists.
type CheckTableResult struct {
	TableExists  bool
	Columns      []database.ColumnInfo
	StatusValues []database.StatusCount
}

// CreateTableResult is returned by CreateUsersTable.
type CreateTableResult struct {
	Created            bool
	MigrationsApplied  int
	SampleDataInserted int
}

// MaintenanceService backs the development-only diagnostic and schema routes.
type MaintenanceService struct {
	schema Schema
	users  UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewMaintenanceService(schema Schema, users UserRepository, hasher PasswordHasher, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		schema: schema,
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// DebugDB proves a round trip and lists every user. A missing users table
// yields an empty list rather than an error.
func (s *MaintenanceService) DebugDB(ctx context.Context) (*DebugDBResult, error) {
	testResult, err := s.schema.Ping(ctx)
	if err != nil {
		return nil, err
	}

	result := &DebugDBResult{TestResult: testResult, Users: []*models.User{}}

	exists, err := s.schema.TableExists(ctx, "users")
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Warn("users table does not exist yet")
		return result, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return result, nil
		}
		return nil, err
	}

	result.Users = users
	result.TotalUsers = len(users)
	return result, nil
}

func (s *MaintenanceService) CheckTable(ctx context.Context) (*CheckTableResult, error) {
	result := &CheckTableResult{
		Columns:      []database.ColumnInfo{},
		StatusValues: []database.StatusCount{},
	}

	exists, err := s.schema.TableExists(ctx, "users")
	if err != nil {
		return nil, err
	}
	if !exists {
		return result, nil
	}
	result.TableExists = true

	if result.Columns, err = s.schema.DescribeTable(ctx, "users"); err != nil {
		return nil, err
	}

	if result.StatusValues, err = s.schema.StatusCounts(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateUsersTable applies pending migrations and inserts the first three
// sample accounts, skipping any whose email already exists.
func (s *MaintenanceService) CreateUsersTable(ctx context.Context) (*CreateTableResult, error) {
	existed, err := s.schema.TableExists(ctx, "users")
	if err != nil {
		return nil, err
	}

	applied, err := s.schema.Migrate(ctx)
	if err != nil {
		return nil, err
	}

	inserted, err := s.seed(ctx, sampleAccounts[:3])
	if err != nil {
		return nil, err
	}

	return &CreateTableResult{
		Created:            !existed,
		MigrationsApplied:  applied,
		SampleDataInserted: inserted,
	}, nil
}

// ResetDB drops every application table, rebuilds the schema and inserts all
// sample accounts. It returns the number of inserted rows.
func (s *MaintenanceService) ResetDB(ctx context.Context) (int, error) {
	s.logger.Warn("resetting database")

	if err := s.schema.Reset(ctx); err != nil {
		return 0, err
	}

	return s.seed(ctx, sampleAccounts)
}

// DebugUsers lists every account, newest first.
func (s *MaintenanceService) DebugUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *MaintenanceService) seed(ctx context.Context, accounts []sampleAccount) (int, error) {
	inserted := 0
	for _, a := range accounts {
		hash, err := s.hasher.Hash(a.password)
		if err != nil {
			return inserted, fmt.Errorf("failed to hash sample password: %w", err)
		}

		created, err := s.users.CreateIfAbsent(ctx, &models.User{
			FirstName:    a.name,
			Email:        a.email,
			PasswordHash: hash,
			Status:       a.status,
			Role:         a.role,
		})
		if err != nil {
			return inserted, fmt.Errorf("failed to insert sample user %s: %w", a.email, err)
		}
		if created {
			inserted++
		}
	}

	s.logger.Info("sample data inserted", slog.Int("rows", inserted))
	return inserted, nil
}
