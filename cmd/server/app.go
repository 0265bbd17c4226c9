package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/herobusana/tasktracker-api/internal/config"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/platform/postgres"
	"github.com/herobusana/tasktracker-api/internal/service"
	"github.com/herobusana/tasktracker-api/internal/service/auth"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore      store.UserStore
	taskStore      store.TaskStore
	taskLogStore   store.TaskLogStore
	dashboardStore store.DashboardStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	dashboardService service.DashboardService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password services
	app.passwordVerifier = auth.NewBcryptVerifier()
	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, passwordHasher, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.taskLogStore = postgres.NewPostgresTaskLogStore(db, logger)
	app.dashboardStore = postgres.NewPostgresDashboardStore(db, logger)

	// Initialize services
	app.taskService = service.NewTaskService(app.taskStore, app.taskLogStore, db, logger)
	app.dashboardService = service.NewDashboardService(app.dashboardStore, app.taskLogStore, logger)

	// Seed the default admin account if configured
	if err := app.seedDefaultAdmin(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed default admin account: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// seedDefaultAdmin creates the initial administrator account on first startup
// so the API is usable before any other user exists. When the admin already
// exists (normal on every restart after the first) seeding is a no-op. If no
// admin password is configured, seeding is skipped entirely.
func (app *application) seedDefaultAdmin(ctx context.Context) error {
	authCfg := app.config.Auth
	if authCfg.DefaultAdminPassword == "" {
		app.logger.Info("Default admin password not configured, skipping admin seeding")
		return nil
	}

	admin, err := domain.NewUser(
		authCfg.DefaultAdminUsername,
		"",
		authCfg.DefaultAdminPassword,
		authCfg.DefaultAdminFullName,
		config.DefaultAdminRole,
	)
	if err != nil {
		return fmt.Errorf("invalid default admin account: %w", err)
	}

	if err := app.userStore.Create(ctx, admin); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			app.logger.Debug("Default admin account already exists",
				"username", authCfg.DefaultAdminUsername)
			return nil
		}
		return err
	}

	app.logger.Info("Default admin account created",
		"username", authCfg.DefaultAdminUsername)
	return nil
}

// tokenLifetime returns the configured access token lifetime as a duration.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
