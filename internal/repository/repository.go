// Package repository defines the persistence interfaces the service layer
// depends on. Services program against these interfaces, never against the
// concrete sqlite implementation — in tests they receive hand-written mocks,
// and swapping the storage engine means touching only the wiring in server.
//
// The finder methods may fail only with a generic not-found or storage error;
// domain rules (permissions, date checks, state transitions) live one layer
// up, in the services.
package repository

import (
	"context"
	"time"

	"github.com/sakif/shareit/internal/model"
)

// Page carries the pagination parameters for list queries.
//
// From is a zero-based start offset and Size is the page length. Following
// the page-oriented convention of the original API, the query fetches the
// page containing From: page = From / Size (integer division), so the
// effective row offset is (From / Size) * Size.
type Page struct {
	From int
	Size int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// LimitOffset resolves the page into SQL LIMIT/OFFSET values, clamping
// nonsense input to sane defaults.
func (p Page) LimitOffset() (limit, offset int) {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	from := p.From
	if from < 0 {
		from = 0
	}
	return size, (from / size) * size
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]model.User, error)
	// EmailTaken reports whether any user other than excludingID already
	// uses the given email. Pass excludingID=0 on create.
	EmailTaken(ctx context.Context, email string, excludingID int64) (bool, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *model.Item) error
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	UpdateItem(ctx context.Context, item *model.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64, page Page) ([]model.Item, error)
	// SearchItems matches available items whose name or description contains
	// text, case-insensitively. The service guarantees text is non-blank.
	SearchItems(ctx context.Context, text string, page Page) ([]model.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status model.BookingStatus) error
	// ListBookingsByBooker / ListBookingsByOwner return bookings matching the
	// state predicate, ordered by start descending. Time-window states
	// (CURRENT/PAST/FUTURE) are evaluated against the given now.
	ListBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page Page) ([]model.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page Page) ([]model.Booking, error)
	// LastBookingForItem returns the most recent APPROVED booking started at
	// or before now; NextBookingForItem the soonest APPROVED booking starting
	// after now. Both return (nil, nil) when there is no such booking.
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	// HasCompletedBooking reports whether booker has any booking of the item
	// that ended strictly before now. Status is deliberately not checked:
	// having held the item at all is what unlocks commenting.
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *model.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	// ListRequestsByRequestor returns all of one user's requests, newest first.
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	// ListOtherRequests returns requests NOT made by excludingUserID,
	// newest first, paginated.
	ListOtherRequests(ctx context.Context, excludingUserID int64, page Page) ([]model.ItemRequest, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}
