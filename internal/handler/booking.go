package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/service"
)

// BookingHandler serves the /bookings routes.
type BookingHandler struct {
	bookings *service.BookingService
	logger   *slog.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(bookings *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

type createBookingRequest struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"` // pointers: a missing date must be reported
	End    *time.Time `json:"end"`   // as InvalidDate, not treated as year one
}

// HandleCreate submits a new booking in WAITING state.
//
// HTTP: POST /bookings
// BODY: {"itemId": 1, "start": "2026-09-01T10:00:00Z", "end": "2026-09-02T10:00:00Z"}
func (h *BookingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	bookerID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid booking JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	booking, err := h.bookings.Create(r.Context(), req.Start, req.End, req.ItemID, bookerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// HandleApprove decides a WAITING booking. Owner only, one shot.
//
// HTTP: PATCH /bookings/{bookingId}?approved=true|false
func (h *BookingHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("approved", "approved must be true or false"))
		return
	}

	booking, err := h.bookings.Approve(r.Context(), bookingID, approved, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// HandleGetByID returns a booking. Booker or item owner only.
//
// HTTP: GET /bookings/{bookingId}
func (h *BookingHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// HandleListByBooker returns the acting user's own bookings.
//
// HTTP: GET /bookings?state=ALL&from=0&size=10
func (h *BookingHandler) HandleListByBooker(w http.ResponseWriter, r *http.Request) {
	bookerID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	bookings, err := h.bookings.ListByBooker(r.Context(), from, size, stateParam(r), bookerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// HandleListByOwner returns bookings of every item the acting user owns.
//
// HTTP: GET /bookings/owner?state=ALL&from=0&size=10
func (h *BookingHandler) HandleListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	bookings, err := h.bookings.ListByOwner(r.Context(), from, size, stateParam(r), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// stateParam reads the state filter, defaulting to ALL. Validation of the
// value itself belongs to the booking service (UnsupportedState).
func stateParam(r *http.Request) string {
	if state := r.URL.Query().Get("state"); state != "" {
		return state
	}
	return "ALL"
}
