package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/barangay/internal/auth"
	"github.com/BradenHooton/barangay/internal/models"
	"github.com/BradenHooton/barangay/internal/services"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

// ReportServiceInterface defines the community feed operations
type ReportServiceInterface interface {
	Submit(ctx context.Context, in services.ReportInput) (*models.Report, error)
	Announce(ctx context.Context, in services.AnnouncementInput) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Delete(ctx context.Context, reportID, requesterID int64, allowAdmin bool) error
}

// ReportHandler serves the report feed
type ReportHandler struct {
	service ReportServiceInterface

	// adminSessionRequired limits the admin delete override to requests
	// carrying a verified admin session.
	adminSessionRequired bool
}

func NewReportHandler(service ReportServiceInterface, adminSessionRequired bool) *ReportHandler {
	return &ReportHandler{service: service, adminSessionRequired: adminSessionRequired}
}

// CreateReportRequest is the body of POST /api/reports
type CreateReportRequest struct {
	UserID   UserID `json:"userId" validate:"required"`
	Content  string `json:"content" validate:"required,max=2000"`
	Location string `json:"location" validate:"max=200"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

// CreateAnnouncementRequest is the body of POST /api/announcements
type CreateAnnouncementRequest struct {
	UserID  UserID `json:"userId"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required,max=2000"`
	Alert   bool   `json:"alert"`
}

// Create handles POST /api/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	report, err := h.service.Submit(r.Context(), services.ReportInput{
		UserID:   int64(req.UserID),
		Content:  req.Content,
		Location: req.Location,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeReportError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"report":  toReportResponse(report),
	})
}

// Announce handles POST /api/announcements. When an admin session is present
// its user id takes precedence over the body.
func (h *ReportHandler) Announce(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if claims := auth.GetAdminFromContext(r.Context()); claims != nil {
		req.UserID = UserID(claims.UserID)
	}

	if req.UserID == 0 {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	report, err := h.service.Announce(r.Context(), services.AnnouncementInput{
		UserID:  int64(req.UserID),
		Title:   req.Title,
		Content: req.Content,
		Alert:   req.Alert,
	})
	if err != nil {
		writeReportError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"report":  toReportResponse(report),
	})
}

// List handles GET /api/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch reports")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reports": toReportResponses(reports),
		"count":   len(reports),
	})
}

// Delete handles DELETE /api/reports/{id}?userId=. An admin session, when
// present, identifies the requester instead of the query.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || reportID <= 0 {
		pkghttp.WriteBadRequest(w, "Invalid report ID")
		return
	}

	var requesterID int64
	allowAdmin := !h.adminSessionRequired
	if claims := auth.GetAdminFromContext(r.Context()); claims != nil {
		requesterID = claims.UserID
		allowAdmin = true
	} else {
		requesterID, err = strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
		if err != nil || requesterID <= 0 {
			pkghttp.WriteBadRequest(w, "User ID is required")
			return
		}
	}

	if err := h.service.Delete(r.Context(), reportID, requesterID, allowAdmin); err != nil {
		writeReportError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Report deleted",
	})
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "User ID and content are required")
	case errors.Is(err, models.ErrNotApproved):
		pkghttp.WriteForbidden(w, err.Error())
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Not allowed")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Not found")
	default:
		pkghttp.WriteInternalError(w, "Server error")
	}
}
