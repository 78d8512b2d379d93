package handlers

import (
	"time"

	"github.com/BradenHooton/barangay/internal/models"
)

// AccountResponse is the login payload returned as "citizen" or "admin".
type AccountResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// PendingUserResponse is one row of the pending-approval listing.
type PendingUserResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStatusResponse is the post-update row returned by approve and reject.
type UserStatusResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// DebugUserResponse is a user row as shown by the diagnostic listings.
type DebugUserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

type ReportResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName"`
	AuthorType string    `json:"authorType"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	Location   string    `json:"location,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Alert      bool      `json:"alert"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toAccountResponse(u *models.User) AccountResponse {
	return AccountResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func toUserStatusResponse(u *models.User) UserStatusResponse {
	return UserStatusResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		Email:     u.Email,
		Status:    u.Status,
	}
}

func toPendingUsers(users []*models.User) []PendingUserResponse {
	out := make([]PendingUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, PendingUserResponse{
			ID:        u.ID,
			FirstName: u.FirstName,
			Email:     u.Email,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}

func toDebugUsers(users []*models.User) []DebugUserResponse {
	out := make([]DebugUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, DebugUserResponse{
			ID:        u.ID,
			FirstName: u.FirstName,
			Email:     u.Email,
			Role:      u.Role,
			Status:    u.Status,
		})
	}
	return out
}

func toReportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		AuthorName: r.AuthorName,
		AuthorType: r.AuthorType,
		Title:      r.Title,
		Content:    r.Content,
		Location:   r.Location,
		ImageURL:   r.ImageURL,
		Alert:      r.Alert,
		CreatedAt:  r.CreatedAt,
	}
}

func toReportResponses(reports []*models.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r))
	}
	return out
}
