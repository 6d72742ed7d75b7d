package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "item not found with id 42"}
//
// This makes it easy for the gateway to parse errors — it always knows what
// fields to expect, regardless of whether it's a 400, 404, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/shareit/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be set before the body — once Encode starts
// writing, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code.
//
// This is the only place the error taxonomy meets HTTP:
//
//	NotFound                                → 404
//	Validation / InvalidDate / Unavailable /
//	NotBooker / UnsupportedState            → 400
//	Forbidden / OwnItemBooking              → 403
//	NotUniqueEmail                          → 409
//	anything else                           → 500, generic message
//
// The service layer never sees a status code; handlers never invent their
// own mapping. errors.Is walks the wrapped chain, so services are free to
// add context with fmt.Errorf("%w", ...) on the way up.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrInvalidDate):
			status = http.StatusBadRequest
			errorType = "invalid_date"
		case errors.Is(err, apperror.ErrItemUnavailable):
			status = http.StatusBadRequest
			errorType = "item_not_available"
		case errors.Is(err, apperror.ErrNotBooker):
			status = http.StatusBadRequest
			errorType = "not_booker"
		case errors.Is(err, apperror.ErrUnsupportedState):
			status = http.StatusBadRequest
			errorType = "unsupported_state"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrOwnItemBooking):
			status = http.StatusForbidden
			errorType = "own_item_booking"
		case errors.Is(err, apperror.ErrNotUniqueEmail):
			status = http.StatusConflict
			errorType = "not_unique_email"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — the raw message might contain SQL or file paths, so the
	// client gets a generic body and the details stay in the server log.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
