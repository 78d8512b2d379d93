//go:build integration

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/database/dbtest"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/repositories"
)

func createUser(t *testing.T, repo *repositories.UserRepository, name, email, status, role string) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &models.User{
		FirstName:    name,
		Email:        email,
		PasswordHash: "$2a$12$placeholderplaceholderplaceholderplaceholderplace",
		Status:       status,
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository(t *testing.T) {
	db := dbtest.Start(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	t.Run("create applies defaults", func(t *testing.T) {
		dbtest.Truncate(t, db)

		user := createUser(t, repo, "Juan Dela Cruz", "juan@email.com", "", "")
		assert.Positive(t, user.ID)
		assert.Equal(t, models.StatusPending, user.Status)
		assert.Equal(t, models.RoleCitizen, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		dbtest.Truncate(t, db)
		createUser(t, repo, "Juan", "juan@email.com", "", "")

		_, err := repo.Create(ctx, &models.User{FirstName: "Other", Email: "juan@email.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)

		inserted, err := repo.CreateIfAbsent(ctx, &models.User{FirstName: "Other", Email: "juan@email.com", PasswordHash: "x", Status: models.StatusPending, Role: models.RoleCitizen})
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("lookups", func(t *testing.T) {
		dbtest.Truncate(t, db)
		admin := createUser(t, repo, "Admin User", "admin@barangay.com", models.StatusApproved, models.RoleAdmin)
		createUser(t, repo, "Juan", "juan@email.com", models.StatusApproved, models.RoleCitizen)

		got, err := repo.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin@barangay.com", got.Email)

		_, err = repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@email.com")
		assert.ErrorIs(t, err, models.ErrNotFound)

		got, err = repo.GetAdminByEmail(ctx, "admin@barangay.com")
		require.NoError(t, err)
		assert.True(t, got.IsAdmin())

		_, err = repo.GetAdminByEmail(ctx, "juan@email.com")
		assert.ErrorIs(t, err, models.ErrNotFound, "citizen must not match an admin lookup")
	})

	t.Run("update status is idempotent", func(t *testing.T) {
		dbtest.Truncate(t, db)
		user := createUser(t, repo, "Maria Santos", "maria@email.com", models.StatusPending, models.RoleCitizen)

		affected, err := repo.UpdateStatus(ctx, user.ID, models.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = repo.UpdateStatus(ctx, user.ID, models.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)

		affected, err = repo.UpdateStatus(ctx, 9999, models.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	t.Run("status check constraint", func(t *testing.T) {
		dbtest.Truncate(t, db)
		user := createUser(t, repo, "Pedro", "pedro@email.com", models.StatusPending, models.RoleCitizen)

		_, err := repo.UpdateStatus(ctx, user.ID, "reject")
		assert.Error(t, err)
	})

	t.Run("list by status newest first", func(t *testing.T) {
		dbtest.Truncate(t, db)
		first := createUser(t, repo, "Maria", "maria@email.com", models.StatusPending, models.RoleCitizen)
		createUser(t, repo, "Juan", "juan@email.com", models.StatusApproved, models.RoleCitizen)
		second := createUser(t, repo, "Ana", "ana@email.com", models.StatusPending, models.RoleCitizen)

		pending, err := repo.ListByStatus(ctx, models.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, second.ID, pending[0].ID)
		assert.Equal(t, first.ID, pending[1].ID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestSchemaInspection(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()
	dbtest.Truncate(t, db)

	one, err := db.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, one)

	exists, err := db.TableExists(ctx, "users")
	require.NoError(t, err)
	assert.True(t, exists)

	columns, err := db.DescribeTable(ctx, "users")
	require.NoError(t, err)
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Field)
	}
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "password_hash")

	require.NoError(t, db.Reset(ctx))
	for _, table := range database.AppTables {
		exists, err := db.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}
