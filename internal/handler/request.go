package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shareit/internal/service"
)

// RequestHandler serves the /requests routes.
type RequestHandler struct {
	requests *service.RequestService
	logger   *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requests *service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{requests: requests, logger: logger}
}

type createRequestRequest struct {
	Description string `json:"description"`
}

// HandleCreate posts a new item request.
//
// HTTP: POST /requests
// BODY: {"description": "looking for a tent for the weekend"}
func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	requestorID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	request, err := h.requests.Create(r.Context(), req.Description, requestorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// HandleListByRequestor returns the acting user's own requests with their
// fulfilling items, newest first.
//
// HTTP: GET /requests
func (h *RequestHandler) HandleListByRequestor(w http.ResponseWriter, r *http.Request) {
	requestorID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	requests, err := h.requests.ListByRequestor(r.Context(), requestorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// HandleListOthers returns everyone else's requests, paginated.
//
// HTTP: GET /requests/all?from=0&size=10
func (h *RequestHandler) HandleListOthers(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	requests, err := h.requests.ListOthers(r.Context(), from, size, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// HandleGetByID returns one request with its fulfilling items.
//
// HTTP: GET /requests/{requestId}
func (h *RequestHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, err)
		return
	}

	request, err := h.requests.GetByID(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
