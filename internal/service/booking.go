// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Every rule of the sharing domain lives here: who may see a booking, when a
// booking may be created, who may decide it, who may comment on an item.
// Services accept primitives and model types, never HTTP types, and return
// domain errors from internal/apperror — the handler layer translates those
// to status codes.
//
// Services receive repository interfaces, not the concrete sqlite type, so
// tests inject in-memory mocks and the wiring in internal/server decides the
// real implementation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

// BookingService owns the booking lifecycle: creation with date validation,
// the one-shot approval transition, and state-filtered listings.
type BookingService struct {
	bookings repository.BookingRepository
	items    repository.ItemRepository
	users    repository.UserRepository
	logger   *slog.Logger

	// now is swappable in tests; everything time-dependent in this service
	// flows through it so the state predicates can be tested deterministically.
	now func() time.Time
}

// NewBookingService creates a BookingService.
func NewBookingService(
	bookings repository.BookingRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates and persists a new booking in WAITING state.
//
// start and end are pointers because "field missing from the request" must be
// distinguishable from a zero time — a missing date is an InvalidDate error,
// not a booking for year one.
//
// The checks run in a fixed order: referenced entities first (NotFound),
// then availability (ItemUnavailable), then ownership (OwnItemBooking),
// then the date window (InvalidDate).
func (s *BookingService) Create(ctx context.Context, start, end *time.Time, itemID, bookerID int64) (*model.BookingView, error) {
	booker, err := s.users.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if start == nil {
		return nil, apperror.InvalidDate("booking start date is required")
	}
	if end == nil {
		return nil, apperror.InvalidDate("booking end date is required")
	}
	if !item.Available {
		return nil, apperror.ItemUnavailable(fmt.Sprintf("item %d is not available for booking", itemID))
	}
	if bookerID == item.OwnerID {
		return nil, apperror.OwnItemBooking()
	}
	if start.Before(s.now()) {
		return nil, apperror.InvalidDate("booking start date must not be in the past")
	}
	if !end.After(*start) {
		return nil, apperror.InvalidDate("booking end date must be after the start date")
	}

	booking := &model.Booking{
		Start:    *start,
		End:      *end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		s.logger.Error("failed to create booking",
			slog.Int64("itemId", itemID),
			slog.Int64("bookerId", bookerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	s.logger.Info("booking created",
		slog.Int64("id", booking.ID),
		slog.Int64("itemId", itemID),
		slog.Int64("bookerId", bookerID),
	)

	view := model.NewBookingView(booking, item, booker)
	return &view, nil
}

// Approve decides a WAITING booking: approved=true moves it to APPROVED,
// approved=false to REJECTED. Only the item's owner may decide, and only once
// — APPROVED and REJECTED are terminal, so a second call fails with the same
// ItemUnavailable class as booking an unavailable item.
func (s *BookingService) Approve(ctx context.Context, bookingID int64, approved bool, userID int64) (*model.BookingView, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.StatusWaiting {
		return nil, apperror.ItemUnavailable(fmt.Sprintf("booking %d is already decided", bookingID))
	}
	if item.OwnerID != userID {
		return nil, apperror.Forbidden("only the item's owner may decide a booking")
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}
	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		s.logger.Error("failed to update booking status",
			slog.Int64("id", bookingID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating booking %d: %w", bookingID, err)
	}
	booking.Status = status

	s.logger.Info("booking decided",
		slog.Int64("id", bookingID),
		slog.String("status", string(status)),
	)

	booker, err := s.users.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	view := model.NewBookingView(booking, item, booker)
	return &view, nil
}

// GetByID returns a booking, visible only to its booker or the item's owner.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID int64) (*model.BookingView, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != userID && item.OwnerID != userID {
		return nil, apperror.Forbidden("only the booker or the item's owner may view this booking")
	}

	booker, err := s.users.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	view := model.NewBookingView(booking, item, booker)
	return &view, nil
}

// ListByBooker returns the acting user's own bookings filtered by state,
// ordered by start descending.
func (s *BookingService) ListByBooker(ctx context.Context, from, size int, state string, bookerID int64) ([]model.BookingView, error) {
	bookingState, ok := model.ParseBookingState(state)
	if !ok {
		return nil, apperror.UnsupportedState(state)
	}
	booker, err := s.users.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListBookingsByBooker(ctx, bookerID, bookingState, s.now(), repository.Page{From: from, Size: size})
	if err != nil {
		s.logger.Error("failed to list bookings by booker",
			slog.Int64("bookerId", bookerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return s.buildViews(ctx, bookings, booker)
}

// ListByOwner returns bookings of every item the acting user owns, filtered
// by state, ordered by start descending.
func (s *BookingService) ListByOwner(ctx context.Context, from, size int, state string, ownerID int64) ([]model.BookingView, error) {
	bookingState, ok := model.ParseBookingState(state)
	if !ok {
		return nil, apperror.UnsupportedState(state)
	}
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListBookingsByOwner(ctx, ownerID, bookingState, s.now(), repository.Page{From: from, Size: size})
	if err != nil {
		s.logger.Error("failed to list bookings by owner",
			slog.Int64("ownerId", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return s.buildViews(ctx, bookings, nil)
}

// buildViews resolves the item and booker for each booking and assembles the
// API views. knownBooker short-circuits the user lookup when every booking in
// the list belongs to the same user (the by-booker listing). Lookups are
// memoised per call — a page of bookings usually references far fewer
// distinct items and users than bookings.
func (s *BookingService) buildViews(ctx context.Context, bookings []model.Booking, knownBooker *model.User) ([]model.BookingView, error) {
	items := make(map[int64]*model.Item)
	users := make(map[int64]*model.User)
	if knownBooker != nil {
		users[knownBooker.ID] = knownBooker
	}

	views := make([]model.BookingView, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]

		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.items.GetItemByID(ctx, b.ItemID)
			if err != nil {
				return nil, err
			}
			items[b.ItemID] = item
		}

		booker, ok := users[b.BookerID]
		if !ok {
			var err error
			booker, err = s.users.GetUserByID(ctx, b.BookerID)
			if err != nil {
				return nil, err
			}
			users[b.BookerID] = booker
		}

		views = append(views, model.NewBookingView(b, item, booker))
	}
	return views, nil
}
