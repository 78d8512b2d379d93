package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BradenHooton/barangay/internal/auth"
	"github.com/BradenHooton/barangay/internal/models"
	pkgauth "github.com/BradenHooton/barangay/pkg/auth"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

// AccountServiceInterface defines the signup and login operations
type AccountServiceInterface interface {
	Signup(ctx context.Context, fullName, email, password string) (int64, error)
	CitizenLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error)
	AdminLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error)
}

// AccountHandler handles signup and login requests
type AccountHandler struct {
	service AccountServiceInterface
	tokens  *auth.TokenManager
	cookies auth.CookieConfig
	logger  *slog.Logger
}

// NewAccountHandler creates an AccountHandler. A nil token manager disables
// the admin session cookie.
func NewAccountHandler(service AccountServiceInterface, tokens *auth.TokenManager, cookies auth.CookieConfig, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		tokens:  tokens,
		cookies: cookies,
		logger:  logger,
	}
}

// SignupRequest represents the request body for registration
type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest represents the request body for both login endpoints
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	// validator counts runes; bcrypt's limit is in bytes.
	if len(req.Password) > pkgauth.MaxPasswordLen {
		pkghttp.WriteBadRequest(w, fmt.Sprintf("validation failed: Password: must have a maximum of %d bytes", pkgauth.MaxPasswordLen))
		return
	}

	userID, err := h.service.Signup(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			pkghttp.WriteBadRequest(w, "Email already exists")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Full name, email and password are required")
		default:
			pkghttp.WriteInternalError(w, "Registration failed")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Registration successful - pending approval",
		"userId":  userID,
	})
}

// CitizenLogin handles POST /citizen-login
func (h *AccountHandler) CitizenLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	user, err := h.service.CitizenLogin(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteUnauthorized(w, "Email not found")
		case errors.Is(err, models.ErrInvalidCredential):
			pkghttp.WriteUnauthorized(w, "Incorrect password")
		case errors.Is(err, models.ErrNotApproved):
			pkghttp.WriteUnauthorized(w, err.Error())
		default:
			pkghttp.WriteInternalError(w, "Server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"citizen": toAccountResponse(user),
	})
}

// AdminLogin handles POST /admin-login. On success it also sets the
// admin session cookie; the JSON body is the same either way.
func (h *AccountHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	user, err := h.service.AdminLogin(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteUnauthorized(w, "Admin not found")
		case errors.Is(err, models.ErrInvalidCredential):
			pkghttp.WriteUnauthorized(w, "Incorrect password")
		default:
			pkghttp.WriteInternalError(w, "Server error")
		}
		return
	}

	if h.tokens != nil {
		token, err := h.tokens.GenerateAdminSession(user)
		if err != nil {
			h.logger.Error("failed to issue admin session", slog.Int64("user_id", user.ID), slog.Any("error", err))
			pkghttp.WriteInternalError(w, "Server error")
			return
		}
		auth.SetAdminSessionCookie(w, token, h.tokens.Expiry(), h.cookies)
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin login successful",
		"admin":   toAccountResponse(user),
	})
}

// AdminLogout handles POST /admin-logout
func (h *AccountHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAdminSessionCookie(w, h.cookies)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AccountHandler) decodeLogin(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return req, false
	}

	req.Email = strings.TrimSpace(req.Email)

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return req, false
	}

	return req, true
}
