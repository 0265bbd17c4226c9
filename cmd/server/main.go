// Package main implements the entry point for the task tracker API server,
// which handles team task management with an immutable status-change audit
// trail and dashboard aggregation.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/herobusana/tasktracker-api/internal/config"
	"github.com/herobusana/tasktracker-api/internal/platform/logger"
)

// main is the entry point for the tasktracker-api server.
// It loads configuration, sets up logging, establishes the database
// connection, wires dependencies, and starts the HTTP server.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("Application terminated with error", "error", err)
		app.cleanup()
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration and sets up all application components.
// Returns the initialized application or an initialization error.
func initializeApp(ctx context.Context) (*application, error) {
	// A .env file is optional; real deployments set environment variables
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
