// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	sqlite.DB → services (each receiving only the repository interfaces
//	it needs) → handlers → routes
//
// Handlers never touch the database; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/shareit/internal/handler"
	"github.com/sakif/shareit/internal/middleware"
	sqliteRepo "github.com/sakif/shareit/internal/repository/sqlite"
	"github.com/sakif/shareit/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string // path to the SQLite database file
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// ROUTE STRUCTURE:
//
//	POST   /users                      → register user
//	PATCH  /users/{userId}             → partial update
//	GET    /users/{userId}, /users     → lookups
//	DELETE /users/{userId}             → remove user
//	POST   /items                      → list item
//	PATCH  /items/{itemId}             → partial update (owner)
//	GET    /items/{itemId}             → detail view
//	GET    /items                      → owner's items
//	GET    /items/search               → text search
//	POST   /items/{itemId}/comment     → post-rental comment
//	POST   /bookings                   → submit booking
//	PATCH  /bookings/{bookingId}       → approve/reject (owner)
//	GET    /bookings/{bookingId}       → single booking
//	GET    /bookings                   → by booker, state-filtered
//	GET    /bookings/owner             → by owner, state-filtered
//	POST   /requests                   → post request
//	GET    /requests                   → own requests
//	GET    /requests/all               → others' requests
//	GET    /requests/{requestId}       → single request
//
// MIDDLEWARE ORDER MATTERS — RequestID and RealIP first so the logger sees
// them, Recoverer before anything that might panic, then our request logger.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", handler.SharerHeader},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Logger(s.logger))

	// Services: each receives only the repository interfaces it needs.
	// s.db implements all of them, but the narrow parameter types keep the
	// services honest about what they touch.
	userService := service.NewUserService(s.db, s.logger)
	itemService := service.NewItemService(s.db, s.db, s.db, s.db, s.db, s.logger)
	bookingService := service.NewBookingService(s.db, s.db, s.db, s.logger)
	requestService := service.NewRequestService(s.db, s.db, s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	itemHandler := handler.NewItemHandler(itemService, s.logger)
	bookingHandler := handler.NewBookingHandler(bookingService, s.logger)
	requestHandler := handler.NewRequestHandler(requestService, s.logger)

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.HandleCreate)
		r.Get("/", userHandler.HandleList)
		r.Get("/{userId}", userHandler.HandleGetByID)
		r.Patch("/{userId}", userHandler.HandleUpdate)
		r.Delete("/{userId}", userHandler.HandleDelete)
	})

	s.router.Route("/items", func(r chi.Router) {
		r.Post("/", itemHandler.HandleCreate)
		r.Get("/", itemHandler.HandleListByOwner)
		r.Get("/search", itemHandler.HandleSearch)
		r.Get("/{itemId}", itemHandler.HandleGetByID)
		r.Patch("/{itemId}", itemHandler.HandleUpdate)
		r.Post("/{itemId}/comment", itemHandler.HandleAddComment)
	})

	s.router.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.HandleCreate)
		r.Get("/", bookingHandler.HandleListByBooker)
		r.Get("/owner", bookingHandler.HandleListByOwner)
		r.Get("/{bookingId}", bookingHandler.HandleGetByID)
		r.Patch("/{bookingId}", bookingHandler.HandleApprove)
	})

	s.router.Route("/requests", func(r chi.Router) {
		r.Post("/", requestHandler.HandleCreate)
		r.Get("/", requestHandler.HandleListByRequestor)
		r.Get("/all", requestHandler.HandleListOthers)
		r.Get("/{requestId}", requestHandler.HandleGetByID)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
