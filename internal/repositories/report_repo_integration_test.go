//go:build integration

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/barangay/internal/database/dbtest"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/repositories"
)

func TestReportRepository(t *testing.T) {
	db := dbtest.Start(t)
	users := repositories.NewUserRepository(db)
	reports := repositories.NewReportRepository(db)
	ctx := context.Background()

	dbtest.Truncate(t, db)
	author := createUser(t, users, "Juan", "juan@email.com", models.StatusApproved, models.RoleCitizen)

	first, err := reports.Create(ctx, &models.Report{UserID: author.ID, AuthorName: author.FirstName, Content: "Broken streetlight", Location: "Purok 3"})
	require.NoError(t, err)
	assert.Equal(t, models.AuthorCitizen, first.AuthorType)

	second, err := reports.Create(ctx, &models.Report{UserID: author.ID, AuthorName: author.FirstName, Content: "Flooding", Alert: true})
	require.NoError(t, err)

	feed, err := reports.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)

	got, err := reports.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Purok 3", got.Location)

	require.NoError(t, reports.Delete(ctx, first.ID))
	assert.ErrorIs(t, reports.Delete(ctx, first.ID), models.ErrNotFound)

	_, err = reports.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
