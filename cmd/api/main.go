package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BradenHooton/barangay/internal/auth"
	"github.com/BradenHooton/barangay/internal/config"
	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/handlers"
	middlewareCustom "github.com/BradenHooton/barangay/internal/middleware"
	"github.com/BradenHooton/barangay/internal/repositories"
	"github.com/BradenHooton/barangay/internal/routes"
	"github.com/BradenHooton/barangay/internal/services"
	pkgauth "github.com/BradenHooton/barangay/pkg/auth"
	pkglogger "github.com/BradenHooton/barangay/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	applied, err := db.Migrate(startupCtx)
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("schema up to date", slog.Int("applied", applied))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	auditLogger := pkglogger.NewAuditLogger(logger)
	hasher := pkgauth.NewHasher(pkgauth.BcryptCost)
	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelayMs:   cfg.Auth.TimingDelayBaseMs,
		RandomDelayMs: cfg.Auth.TimingDelayRandomMs,
	})

	var notifier services.Notifier = services.NewLogNotifier(logger)
	if cfg.Email.Enabled() {
		sesNotifier, err := services.NewSESNotifier(startupCtx, cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Error("failed to initialize email notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	}

	// Initialize services
	accountService, err := services.NewAccountService(userRepo, hasher, timingDelay, auditLogger, logger)
	if err != nil {
		logger.Error("failed to initialize account service", slog.Any("error", err))
		os.Exit(1)
	}
	approvalService := services.NewApprovalService(userRepo, notifier, auditLogger, logger)
	reportService := services.NewReportService(reportRepo, userRepo, auditLogger, logger)
	maintenanceService := services.NewMaintenanceService(db, userRepo, hasher, logger)

	// Bootstrap first admin user if configured
	created, err := accountService.EnsureAdmin(startupCtx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	} else if created {
		logger.Info("admin user created", slog.String("email", pkglogger.SanitizedEmail(cfg.Admin.Email)))
	}

	tokenManager, err := newTokenManager(cfg.Auth, logger)
	if err != nil {
		logger.Error("failed to initialize session signing", slog.Any("error", err))
		os.Exit(1)
	}
	cookieConfig := auth.CookieConfig{Secure: cfg.Auth.CookieSecure, SameSite: "lax"}

	// Initialize handlers
	h := routes.Handlers{
		Account:  handlers.NewAccountHandler(accountService, tokenManager, cookieConfig, logger),
		Approval: handlers.NewApprovalHandler(approvalService, logger),
		Reports:  handlers.NewReportHandler(reportService, cfg.Auth.AdminSessionRequired),
		Dev:      handlers.NewDevHandler(maintenanceService, db, cfg.Server.Port, cfg.Server.Env, logger),
	}

	opts := routes.Options{
		RateLimit: middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Auth.RateLimitPerMinute},
		DevRoutes: cfg.Server.DevRoutes,
	}
	if cfg.Auth.AdminSessionRequired {
		opts.AdminGuard = auth.RequireAdminSession(tokenManager, userRepo, logger)
		opts.AdminSession = auth.OptionalAdminSession(tokenManager, userRepo, logger)
	}
	if cfg.Server.DevRoutes {
		logger.Warn("development routes enabled")
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, h, opts)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// newTokenManager signs admin sessions with JWT_SECRET, or with a per-process
// key when no secret is configured. Sessions then end on restart.
func newTokenManager(cfg config.AuthConfig, logger *slog.Logger) (*auth.TokenManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		key, err := pkgauth.GenerateTokenKey()
		if err != nil {
			return nil, err
		}
		secret = key
		logger.Warn("JWT_SECRET not set, using an ephemeral session key")
	}
	return auth.NewTokenManager(secret, cfg.AdminSessionExpiry), nil
}
