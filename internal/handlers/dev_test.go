package handlers_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/handlers"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
)

func newDevHandler(svc handlers.MaintenanceServiceInterface, health handlers.HealthChecker) *handlers.DevHandler {
	return handlers.NewDevHandler(svc, health, "5000", "development", slog.Default())
}

func TestRoot(t *testing.T) {
	h := newDevHandler(&handlers.MockMaintenanceService{}, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.Root(w, httptest.NewRequest("GET", "/", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "5000", body["port"])
	assert.Equal(t, "development", body["environment"])
	assert.NotEmpty(t, body["time"])
}

func TestHealth(t *testing.T) {
	h := newDevHandler(&handlers.MockMaintenanceService{}, &handlers.MockHealthChecker{})
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	h = newDevHandler(&handlers.MockMaintenanceService{}, &handlers.MockHealthChecker{Err: errors.New("down")})
	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))
	handlers.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "Database unreachable")
}

func TestDebugDB(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		DebugDBFunc: func(ctx context.Context) (*services.DebugDBResult, error) {
			return &services.DebugDBResult{
				TestResult: 1,
				TotalUsers: 1,
				Users:      []*models.User{{ID: 1, FirstName: "Admin User", Email: "admin@barangay.com", Status: "approve"}},
			}, nil
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.DebugDB(w, httptest.NewRequest("GET", "/api/debug-db", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, true, body["dbConnected"])
	assert.Equal(t, float64(1), body["testResult"])
	assert.Equal(t, float64(1), body["totalUsers"])
	assert.Len(t, body["users"], 1)
}

func TestDebugDB_Failure(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		DebugDBFunc: func(ctx context.Context) (*services.DebugDBResult, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.DebugDB(w, httptest.NewRequest("GET", "/api/debug-db", nil))

	handlers.AssertErrorResponse(t, w, http.StatusInternalServerError, "Database check failed")
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestCheckTable(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		CheckTableFunc: func(ctx context.Context) (*services.CheckTableResult, error) {
			return &services.CheckTableResult{
				TableExists:  true,
				Columns:      []database.ColumnInfo{{Field: "status", Type: "text", Null: "NO"}},
				StatusValues: []database.StatusCount{{Status: "pending", Count: 2}},
			}, nil
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.CheckTable(w, httptest.NewRequest("GET", "/api/check-table", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, true, body["tableExists"])
	assert.Equal(t, "Table check successful", body["message"])
	assert.Contains(t, w.Body.String(), `"Field":"status"`)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestCheckTable_Missing(t *testing.T) {
	h := newDevHandler(&handlers.MockMaintenanceService{}, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.CheckTable(w, httptest.NewRequest("GET", "/api/check-table", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, false, body["tableExists"])
	assert.Equal(t, "Users table does not exist yet", body["message"])
	assert.Contains(t, w.Body.String(), `"tableStructure":[]`)
}

func TestCreateUsersTable(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		CreateUsersTableFunc: func(ctx context.Context) (*services.CreateTableResult, error) {
			return &services.CreateTableResult{Created: true, MigrationsApplied: 3, SampleDataInserted: 3}, nil
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.CreateUsersTable(w, httptest.NewRequest("POST", "/api/create-users-table", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, true, body["created"])
	assert.Equal(t, float64(3), body["sampleDataInserted"])
}

func TestResetDB(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		ResetDBFunc: func(ctx context.Context) (int, error) {
			return 4, nil
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.ResetDB(w, httptest.NewRequest("POST", "/api/reset-db", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, "Database reset successfully", body["message"])
	assert.Equal(t, float64(4), body["sampleDataInserted"])
	assert.Contains(t, body["tablesCreated"], "users")
}

func TestDebugUsers(t *testing.T) {
	svc := &handlers.MockMaintenanceService{
		DebugUsersFunc: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{
				{ID: 2, FirstName: "Juan", Email: "juan@email.com", Role: "citizen", Status: "approve", PasswordHash: "x"},
			}, nil
		},
	}
	h := newDevHandler(svc, &handlers.MockHealthChecker{})

	w := httptest.NewRecorder()
	h.DebugUsers(w, httptest.NewRequest("GET", "/debug-users", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, float64(1), body["count"])
	assert.Contains(t, w.Body.String(), `"role":"citizen"`)
	assert.NotContains(t, w.Body.String(), "PasswordHash")
}
