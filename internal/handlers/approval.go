package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

// ApprovalServiceInterface defines the admin review operations
type ApprovalServiceInterface interface {
	ListPending(ctx context.Context) ([]*models.User, error)
	Approve(ctx context.Context, userID int64) (*services.StatusChange, error)
	Reject(ctx context.Context, userID int64) (*services.StatusChange, error)
	SetStatus(ctx context.Context, userID int64, status string) (int64, error)
}

// ApprovalHandler serves the admin approval endpoints
type ApprovalHandler struct {
	service ApprovalServiceInterface
	logger  *slog.Logger
}

func NewApprovalHandler(service ApprovalServiceInterface, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		service: service,
		logger:  logger,
	}
}

// UserIDRequest is the body of approve-user and reject-user
type UserIDRequest struct {
	UserID UserID `json:"userId" validate:"required"`
}

// UpdateStatusRequest is the body of update-status
type UpdateStatusRequest struct {
	UserID    UserID `json:"userId" validate:"required"`
	NewStatus string `json:"newStatus"`
}

// PendingUsers handles GET /api/pending-users
func (h *ApprovalHandler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListPending(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch pending users")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   toPendingUsers(users),
		"count":   len(users),
	})
}

// ApproveUser handles POST /api/approve-user
func (h *ApprovalHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUserID(w, r)
	if !ok {
		return
	}

	change, err := h.service.Approve(r.Context(), userID)
	if err != nil {
		h.writeDecisionError(w, userID, err, "Failed to approve user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "User approved successfully",
		"affectedRows": change.AffectedRows,
		"user":         toUserStatusResponse(change.User),
	})
}

// RejectUser handles POST /api/reject-user
func (h *ApprovalHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUserID(w, r)
	if !ok {
		return
	}

	change, err := h.service.Reject(r.Context(), userID)
	if err != nil {
		h.writeDecisionError(w, userID, err, "Failed to reject user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("User rejected successfully (status set to: %s)", change.StatusUsed),
		"statusUsed":   change.StatusUsed,
		"affectedRows": change.AffectedRows,
		"user":         toUserStatusResponse(change.User),
	})
}

// UpdateStatus handles POST /api/update-status. Only canonical statuses
// (and the legacy "reject" alias) are accepted.
func (h *ApprovalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	affected, err := h.service.SetStatus(r.Context(), int64(req.UserID), req.NewStatus)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus):
			pkghttp.WriteBadRequest(w, fmt.Sprintf("Invalid status: %q (expected pending, approve or rejected)", req.NewStatus))
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "User ID is required")
		default:
			h.logger.Error("manual status update failed", slog.Any("error", err))
			pkghttp.WriteErrorWithDetails(w, http.StatusInternalServerError, "internal_error", "Failed to update status", err.Error())
		}
		return
	}

	status, _ := models.ParseStatus(req.NewStatus)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("User %d updated to %s", req.UserID, status),
		"affectedRows": affected,
	})
}

func (h *ApprovalHandler) decodeUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req UserIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return 0, false
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return 0, false
	}

	return int64(req.UserID), true
}

func (h *ApprovalHandler) writeDecisionError(w http.ResponseWriter, userID int64, err error, message string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, fmt.Sprintf("User ID %d not found", userID))
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "User ID is required")
	default:
		h.logger.Error(message, slog.Int64("user_id", userID), slog.Any("error", err))
		pkghttp.WriteErrorWithDetails(w, http.StatusInternalServerError, "internal_error", message, err.Error())
	}
}
