package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/barangay/internal/auth"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRawRequest creates a request with a literal body
func NewRawRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAdminContext adds admin session claims to request context
func WithAdminContext(req *http.Request, userID int64, email string) *http.Request {
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Type:   models.TokenTypeAdminSession,
	}
	ctx := context.WithValue(req.Context(), auth.AdminContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext sets chi URL parameters on the request
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// DecodeBody checks the status and content type, then decodes the JSON body
func DecodeBody(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) map[string]interface{} {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode response JSON")
	return body
}

// AssertErrorResponse checks the failure envelope
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to decode error response")
	assert.False(t, resp.Success)
	assert.Equal(t, expectedMessage, resp.Error)
	assert.NotEmpty(t, resp.Code, "Error code should not be empty")
}

// MockAccountService implements AccountServiceInterface for testing
type MockAccountService struct {
	SignupFunc       func(ctx context.Context, fullName, email, password string) (int64, error)
	CitizenLoginFunc func(ctx context.Context, email, password, ipAddress string) (*models.User, error)
	AdminLoginFunc   func(ctx context.Context, email, password, ipAddress string) (*models.User, error)
}

func (m *MockAccountService) Signup(ctx context.Context, fullName, email, password string) (int64, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, fullName, email, password)
	}
	return 1, nil
}

func (m *MockAccountService) CitizenLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error) {
	if m.CitizenLoginFunc != nil {
		return m.CitizenLoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountService) AdminLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrNotFound
}

// MockApprovalService implements ApprovalServiceInterface for testing
type MockApprovalService struct {
	ListPendingFunc func(ctx context.Context) ([]*models.User, error)
	ApproveFunc     func(ctx context.Context, userID int64) (*services.StatusChange, error)
	RejectFunc      func(ctx context.Context, userID int64) (*services.StatusChange, error)
	SetStatusFunc   func(ctx context.Context, userID int64, status string) (int64, error)
}

func (m *MockApprovalService) ListPending(ctx context.Context) ([]*models.User, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockApprovalService) Approve(ctx context.Context, userID int64) (*services.StatusChange, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockApprovalService) Reject(ctx context.Context, userID int64) (*services.StatusChange, error) {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockApprovalService) SetStatus(ctx context.Context, userID int64, status string) (int64, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, userID, status)
	}
	return 0, nil
}

// MockReportService implements ReportServiceInterface for testing
type MockReportService struct {
	SubmitFunc   func(ctx context.Context, in services.ReportInput) (*models.Report, error)
	AnnounceFunc func(ctx context.Context, in services.AnnouncementInput) (*models.Report, error)
	ListFunc     func(ctx context.Context) ([]*models.Report, error)
	DeleteFunc   func(ctx context.Context, reportID, requesterID int64, allowAdmin bool) error
}

func (m *MockReportService) Submit(ctx context.Context, in services.ReportInput) (*models.Report, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in)
	}
	return &models.Report{ID: 1, UserID: in.UserID, Content: in.Content}, nil
}

func (m *MockReportService) Announce(ctx context.Context, in services.AnnouncementInput) (*models.Report, error) {
	if m.AnnounceFunc != nil {
		return m.AnnounceFunc(ctx, in)
	}
	return &models.Report{ID: 1, UserID: in.UserID, Content: in.Content, AuthorType: models.AuthorAdmin, Alert: in.Alert}, nil
}

func (m *MockReportService) List(ctx context.Context) ([]*models.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Report{}, nil
}

func (m *MockReportService) Delete(ctx context.Context, reportID, requesterID int64, allowAdmin bool) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, reportID, requesterID, allowAdmin)
	}
	return nil
}

// MockMaintenanceService implements MaintenanceServiceInterface for testing
type MockMaintenanceService struct {
	DebugDBFunc          func(ctx context.Context) (*services.DebugDBResult, error)
	CheckTableFunc       func(ctx context.Context) (*services.CheckTableResult, error)
	CreateUsersTableFunc func(ctx context.Context) (*services.CreateTableResult, error)
	ResetDBFunc          func(ctx context.Context) (int, error)
	DebugUsersFunc       func(ctx context.Context) ([]*models.User, error)
}

func (m *MockMaintenanceService) DebugDB(ctx context.Context) (*services.DebugDBResult, error) {
	if m.DebugDBFunc != nil {
		return m.DebugDBFunc(ctx)
	}
	return &services.DebugDBResult{TestResult: 1, Users: []*models.User{}}, nil
}

func (m *MockMaintenanceService) CheckTable(ctx context.Context) (*services.CheckTableResult, error) {
	if m.CheckTableFunc != nil {
		return m.CheckTableFunc(ctx)
	}
	return &services.CheckTableResult{}, nil
}

func (m *MockMaintenanceService) CreateUsersTable(ctx context.Context) (*services.CreateTableResult, error) {
	if m.CreateUsersTableFunc != nil {
		return m.CreateUsersTableFunc(ctx)
	}
	return &services.CreateTableResult{}, nil
}

func (m *MockMaintenanceService) ResetDB(ctx context.Context) (int, error) {
	if m.ResetDBFunc != nil {
		return m.ResetDBFunc(ctx)
	}
	return 0, nil
}

func (m *MockMaintenanceService) DebugUsers(ctx context.Context) ([]*models.User, error) {
	if m.DebugUsersFunc != nil {
		return m.DebugUsersFunc(ctx)
	}
	return []*models.User{}, nil
}

// MockHealthChecker implements HealthChecker for testing
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
