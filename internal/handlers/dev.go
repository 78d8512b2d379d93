package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

// MaintenanceServiceInterface defines the diagnostic and schema operations
type MaintenanceServiceInterface interface {
	DebugDB(ctx context.Context) (*services.DebugDBResult, error)
	CheckTable(ctx context.Context) (*services.CheckTableResult, error)
	CreateUsersTable(ctx context.Context) (*services.CreateTableResult, error)
	ResetDB(ctx context.Context) (int, error)
	DebugUsers(ctx context.Context) ([]*models.User, error)
}

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DevHandler serves the status, diagnostic and schema utility routes
type DevHandler struct {
	service MaintenanceServiceInterface
	health  HealthChecker
	port    string
	env     string
	logger  *slog.Logger
	now     func() time.Time
}

func NewDevHandler(service MaintenanceServiceInterface, health HealthChecker, port, env string, logger *slog.Logger) *DevHandler {
	return &DevHandler{
		service: service,
		health:  health,
		port:    port,
		env:     env,
		logger:  logger,
		now:     time.Now,
	}
}

// Root handles GET /
func (h *DevHandler) Root(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Barangay backend server is running",
		"port":        h.port,
		"environment": h.env,
		"time":        h.now().Format(time.RFC3339),
	})
}

// Health handles GET /health
func (h *DevHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.HealthCheck(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unreachable")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "ok",
	})
}

// DebugDB handles GET /api/debug-db
func (h *DevHandler) DebugDB(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DebugDB(r.Context())
	if err != nil {
		h.writeFailure(w, "Database check failed", err)
		return
	}

	users := make([]UserStatusResponse, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, toUserStatusResponse(u))
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"dbConnected": true,
		"testResult":  result.TestResult,
		"totalUsers":  result.TotalUsers,
		"users":       users,
	})
}

// CheckTable handles GET /api/check-table
func (h *DevHandler) CheckTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CheckTable(r.Context())
	if err != nil {
		h.writeFailure(w, "Table check failed", err)
		return
	}

	message := "Table check successful"
	if !result.TableExists {
		message = "Users table does not exist yet"
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"tableExists":    result.TableExists,
		"tableStructure": nonNilColumns(result.Columns),
		"statusValues":   nonNilCounts(result.StatusValues),
		"message":        message,
	})
}

// CreateUsersTable handles POST /api/create-users-table
func (h *DevHandler) CreateUsersTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CreateUsersTable(r.Context())
	if err != nil {
		h.writeFailure(w, "Failed to create users table", err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"message":            "Users table created successfully",
		"created":            result.Created,
		"migrationsApplied":  result.MigrationsApplied,
		"sampleDataInserted": result.SampleDataInserted,
	})
}

// ResetDB handles POST /api/reset-db
func (h *DevHandler) ResetDB(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.service.ResetDB(r.Context())
	if err != nil {
		h.writeFailure(w, "Failed to reset database", err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"message":            "Database reset successfully",
		"tablesCreated":      database.AppTables,
		"sampleDataInserted": inserted,
	})
}

// DebugUsers handles GET /debug-users
func (h *DevHandler) DebugUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.DebugUsers(r.Context())
	if err != nil {
		h.writeFailure(w, "Failed to list users", err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(users),
		"users":   toDebugUsers(users),
	})
}

func (h *DevHandler) writeFailure(w http.ResponseWriter, message string, err error) {
	h.logger.Error(message, slog.Any("error", err))
	pkghttp.WriteErrorWithDetails(w, http.StatusInternalServerError, "internal_error", message, err.Error())
}

func nonNilColumns(c []database.ColumnInfo) []database.ColumnInfo {
	if c == nil {
		return []database.ColumnInfo{}
	}
	return c
}

func nonNilCounts(c []database.StatusCount) []database.StatusCount {
	if c == nil {
		return []database.StatusCount{}
	}
	return c
}
