package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/barangay/internal/handlers"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

func newApprovalHandler(svc handlers.ApprovalServiceInterface) *handlers.ApprovalHandler {
	return handlers.NewApprovalHandler(svc, slog.Default())
}

func TestPendingUsers_Success(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock := &handlers.MockApprovalService{
		ListPendingFunc: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{
				{ID: 5, FirstName: "Maria Santos", Email: "maria@email.com", Status: "pending", CreatedAt: created, PasswordHash: "secret"},
				{ID: 3, FirstName: "Ana Cruz", Email: "ana@email.com", Status: "pending", CreatedAt: created},
			}, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.PendingUsers(w, httptest.NewRequest("GET", "/api/pending-users", nil))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, float64(2), body["count"])

	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 2)

	first := users[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["id"])
	assert.Equal(t, "pending", first["status"])
	assert.Equal(t, "2024-05-01T08:00:00Z", first["created_at"])
	assert.NotContains(t, first, "password_hash")
	assert.NotContains(t, first, "PasswordHash")
}

func TestPendingUsers_EmptyListIsArray(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.PendingUsers(w, httptest.NewRequest("GET", "/api/pending-users", nil))

	assert.Contains(t, w.Body.String(), `"users":[]`)
}

func TestPendingUsers_Failure(t *testing.T) {
	mock := &handlers.MockApprovalService{
		ListPendingFunc: func(ctx context.Context) ([]*models.User, error) {
			return nil, models.ErrInternalServer
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.PendingUsers(w, httptest.NewRequest("GET", "/api/pending-users", nil))

	handlers.AssertErrorResponse(t, w, http.StatusInternalServerError, "Failed to fetch pending users")
}

func TestApproveUser_Success(t *testing.T) {
	mock := &handlers.MockApprovalService{
		ApproveFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
			assert.Equal(t, int64(5), userID)
			return &services.StatusChange{
				User:         &models.User{ID: 5, FirstName: "Maria", Email: "maria@email.com", Status: models.StatusApproved},
				AffectedRows: 1,
				StatusUsed:   models.StatusApproved,
			}, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewTestRequest(t, "POST", "/api/approve-user", map[string]int{"userId": 5}))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, "User approved successfully", body["message"])
	assert.Equal(t, float64(1), body["affectedRows"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "approve", user["status"])
}

func TestApproveUser_AcceptsStringID(t *testing.T) {
	var got int64
	mock := &handlers.MockApprovalService{
		ApproveFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
			got = userID
			return &services.StatusChange{User: &models.User{ID: userID, Status: models.StatusApproved}}, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewRawRequest("POST", "/api/approve-user", `{"userId":"12"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), got)
}

func TestApproveUser_RepeatReportsZeroRows(t *testing.T) {
	mock := &handlers.MockApprovalService{
		ApproveFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
			return &services.StatusChange{
				User:         &models.User{ID: userID, Status: models.StatusApproved},
				AffectedRows: 0,
				StatusUsed:   models.StatusApproved,
			}, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewTestRequest(t, "POST", "/api/approve-user", map[string]int{"userId": 5}))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["affectedRows"])
}

func TestApproveUser_MissingUserID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent", `{}`},
		{"null", `{"userId":null}`},
		{"zero", `{"userId":0}`},
		{"empty string", `{"userId":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &handlers.MockApprovalService{
				ApproveFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
					called = true
					return nil, nil
				},
			}
			h := newApprovalHandler(mock)

			w := httptest.NewRecorder()
			h.ApproveUser(w, handlers.NewRawRequest("POST", "/api/approve-user", tt.body))

			handlers.AssertErrorResponse(t, w, http.StatusBadRequest, "User ID is required")
			assert.False(t, called)
		})
	}
}

func TestApproveUser_NotFound(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewTestRequest(t, "POST", "/api/approve-user", map[string]int{"userId": 999}))

	handlers.AssertErrorResponse(t, w, http.StatusNotFound, "User ID 999 not found")
}

func TestApproveUser_StoreFailureIncludesDetails(t *testing.T) {
	mock := &handlers.MockApprovalService{
		ApproveFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
			return nil, errors.New("connection reset by peer")
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewTestRequest(t, "POST", "/api/approve-user", map[string]int{"userId": 5}))

	handlers.AssertErrorResponse(t, w, http.StatusInternalServerError, "Failed to approve user")
	assert.Contains(t, w.Body.String(), "connection reset by peer")
}

func TestRejectUser_Success(t *testing.T) {
	mock := &handlers.MockApprovalService{
		RejectFunc: func(ctx context.Context, userID int64) (*services.StatusChange, error) {
			return &services.StatusChange{
				User:         &models.User{ID: userID, FirstName: "Pedro", Status: models.StatusRejected},
				AffectedRows: 1,
				StatusUsed:   models.StatusRejected,
			}, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.RejectUser(w, handlers.NewTestRequest(t, "POST", "/api/reject-user", map[string]int{"userId": 4}))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, "rejected", body["statusUsed"])
	assert.Equal(t, "User rejected successfully (status set to: rejected)", body["message"])
	assert.Equal(t, "rejected", body["user"].(map[string]interface{})["status"])
}

func TestRejectUser_NotFound(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.RejectUser(w, handlers.NewTestRequest(t, "POST", "/api/reject-user", map[string]int{"userId": 42}))

	handlers.AssertErrorResponse(t, w, http.StatusNotFound, "User ID 42 not found")
}

func TestUpdateStatus_Success(t *testing.T) {
	mock := &handlers.MockApprovalService{
		SetStatusFunc: func(ctx context.Context, userID int64, status string) (int64, error) {
			assert.Equal(t, int64(3), userID)
			assert.Equal(t, "reject", status)
			return 1, nil
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, handlers.NewRawRequest("POST", "/api/update-status", `{"userId":3,"newStatus":"reject"}`))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, "User 3 updated to rejected", body["message"])
	assert.Equal(t, float64(1), body["affectedRows"])
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	mock := &handlers.MockApprovalService{
		SetStatusFunc: func(ctx context.Context, userID int64, status string) (int64, error) {
			return 0, models.ErrInvalidStatus
		},
	}
	h := newApprovalHandler(mock)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, handlers.NewRawRequest("POST", "/api/update-status", `{"userId":3,"newStatus":"banned"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "banned")
}

func TestUpdateStatus_UnknownUserIsZeroRows(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.UpdateStatus(w, handlers.NewRawRequest("POST", "/api/update-status", `{"userId":999,"newStatus":"approve"}`))

	body := handlers.DecodeBody(t, w, http.StatusOK)
	assert.Equal(t, float64(0), body["affectedRows"])
}

func TestUpdateStatus_MissingUserID(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.UpdateStatus(w, handlers.NewRawRequest("POST", "/api/update-status", `{"newStatus":"approve"}`))

	handlers.AssertErrorResponse(t, w, http.StatusBadRequest, "User ID is required")
}

func TestErrorEnvelopeShape(t *testing.T) {
	h := newApprovalHandler(&handlers.MockApprovalService{})

	w := httptest.NewRecorder()
	h.ApproveUser(w, handlers.NewRawRequest("POST", "/api/approve-user", `{}`))

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "bad_request", resp.Code)
}
