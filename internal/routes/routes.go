package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/barangay/internal/handlers"
	"github.com/BradenHooton/barangay/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Account  *handlers.AccountHandler
	Approval *handlers.ApprovalHandler
	Reports  *handlers.ReportHandler
	Dev      *handlers.DevHandler
}

// Options controls which optional protections and routes are mounted.
type Options struct {
	RateLimit middleware.RateLimitConfig

	// AdminGuard wraps the approval and announcement routes. Nil leaves them open.
	AdminGuard func(http.Handler) http.Handler

	// AdminSession attaches admin claims when present without requiring them.
	AdminSession func(http.Handler) http.Handler

	DevRoutes bool
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, h Handlers, opts Options) {
	limited := middleware.RateLimitByIP(opts.RateLimit)

	router.Get("/", h.Dev.Root)
	router.Get("/health", h.Dev.Health)

	// Account routes
	router.With(limited).Post("/signup", h.Account.Signup)
	router.With(limited).Post("/citizen-login", h.Account.CitizenLogin)
	router.With(limited).Post("/admin-login", h.Account.AdminLogin)
	router.Post("/admin-logout", h.Account.AdminLogout)

	// Community reports
	router.Get("/api/reports", h.Reports.List)
	router.With(limited).Post("/api/reports", h.Reports.Create)
	router.Group(func(r chi.Router) {
		if opts.AdminSession != nil {
			r.Use(opts.AdminSession)
		}
		r.Delete("/api/reports/{id}", h.Reports.Delete)
	})

	// Approval workflow
	router.Group(func(r chi.Router) {
		if opts.AdminGuard != nil {
			r.Use(opts.AdminGuard)
		}
		r.Get("/api/pending-users", h.Approval.PendingUsers)
		r.Post("/api/approve-user", h.Approval.ApproveUser)
		r.Post("/api/reject-user", h.Approval.RejectUser)
		r.Post("/api/update-status", h.Approval.UpdateStatus)
		r.Post("/api/announcements", h.Reports.Announce)
	})

	if !opts.DevRoutes {
		return
	}

	// Diagnostics and schema utilities
	router.Get("/api/debug-db", h.Dev.DebugDB)
	router.Get("/api/check-table", h.Dev.CheckTable)
	router.Get("/debug-users", h.Dev.DebugUsers)
	router.Post("/api/create-users-table", h.Dev.CreateUsersTable)
	router.Post("/api/reset-db", h.Dev.ResetDB)
}
