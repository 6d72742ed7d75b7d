// Package main is the entry point for the item-sharing server.
//
// The main package stays minimal — its job is to:
// 1. Read configuration (env vars)
// 2. Create the logger
// 3. Start the application
//
// All actual logic lives in internal/; this separation keeps the components
// testable without spinning up a process.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/xid"

	"github.com/sakif/shareit/internal/server"
)

func main() {
	// Structured logging via slog. Every line carries an instance id so logs
	// from multiple server processes writing to the same sink stay separable.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With(slog.String("instance", xid.New().String()))

	// PORT defaults to 8080; the ShareIt gateway expects the server here.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH overrides the database location for deployments.
	// Example: DB_PATH=/var/lib/shareit/prod.db
	dbPath := "data/shareit.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{Port: port, DBPath: dbPath}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
