// Package handler contains the HTTP layer: request parsing, response writing,
// and nothing else. Handlers translate between HTTP and the service layer —
// every business rule lives in internal/service, every status-code decision
// in response.go.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/service"
)

// UserHandler serves the /users routes.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleCreate registers a new user.
//
// HTTP: POST /users
// BODY: {"name": "Alice", "email": "alice@example.com"}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// HandleUpdate applies a partial update to a user.
//
// HTTP: PATCH /users/{userId}
// The patch decodes straight into pointer fields — absent JSON keys stay nil
// and mean "unchanged".
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("invalid user patch JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetByID returns a single user.
//
// HTTP: GET /users/{userId}
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleList returns all users.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleDelete removes a user.
//
// HTTP: DELETE /users/{userId}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
