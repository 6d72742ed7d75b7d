package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
//
// The state machine is intentionally linear: every booking starts WAITING and
// the owner decides it exactly once, moving it to APPROVED or REJECTED. Both of
// those are terminal — there is no re-approval and no cancellation. Keeping
// WAITING as the only non-terminal state avoids the re-entrancy bugs of a
// naive "just update the field" design.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Booking is a time-bounded reservation of an item by a user who is not its
// owner. Start/End invariants (end strictly after start, start not in the
// past at creation) are enforced by the booking service.
type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}

// BookingView is the booking shape returned by the API: the raw ids are
// replaced with compact item and booker objects, matching what callers need
// to render a booking without extra lookups.
type BookingView struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   ItemShort     `json:"item"`
	Booker UserShort     `json:"booker"`
}

// NewBookingView assembles the API view from a booking and its resolved
// item and booker.
func NewBookingView(b *Booking, item *Item, booker *User) BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   item.Short(),
		Booker: booker.Short(),
	}
}

// BookingShort is the compact booking shape embedded in item detail views.
type BookingShort struct {
	ID       int64         `json:"id"`
	BookerID int64         `json:"bookerId"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
}

// Short converts a Booking to its embedded form.
func (b *Booking) Short() BookingShort {
	return BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End, Status: b.Status}
}

// BookingState is the filter callers pass when listing bookings. It mixes two
// kinds of predicate: time-window states (CURRENT/PAST/FUTURE, evaluated
// against "now" at query time) and status states (WAITING/REJECTED). ALL
// applies no filter.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState parses a state filter string, case-insensitively.
// ok is false for anything outside the six known states — the caller decides
// how to report that (the booking service raises UnsupportedState).
func ParseBookingState(s string) (BookingState, bool) {
	switch BookingState(strings.ToUpper(s)) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(strings.ToUpper(s)), true
	default:
		return "", false
	}
}
