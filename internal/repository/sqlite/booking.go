package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

var _ repository.BookingRepository = (*DB)(nil)

const bookingColumns = `b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status`

// CreateBooking inserts a new booking and fills in the generated id.
// Start and end are stored in UTC so SQL comparisons against "now" are exact
// regardless of the timezone the caller sent.
func (db *DB) CreateBooking(ctx context.Context, booking *model.Booking) error {
	booking.Start = booking.Start.UTC()
	booking.End = booking.End.UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		 VALUES (?, ?, ?, ?, ?)`,
		booking.Start,
		booking.End,
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading booking id: %w", err)
	}
	booking.ID = id
	return nil
}

// GetBookingByID retrieves a single booking.
func (db *DB) GetBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id,
	).Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("booking", id)
		}
		return nil, fmt.Errorf("sqlite: getting booking %d: %w", id, err)
	}
	return &b, nil
}

// UpdateBookingStatus flips a booking to its decided state. The one-shot
// transition rule (only WAITING bookings may be decided) is enforced by the
// service; this method just writes the column.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating booking %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("booking", id)
	}
	return nil
}

// stateCondition translates a BookingState into a SQL predicate plus its
// bind arguments. This is the single place the state table from the API
// contract is encoded:
//
//	ALL      → no filter
//	CURRENT  → start <= now <= end
//	PAST     → now > end
//	FUTURE   → now < start
//	WAITING  → status = WAITING
//	REJECTED → status = REJECTED
//
// The service has already rejected anything else with UnsupportedState, so
// the default branch is unreachable in practice and filters nothing.
func stateCondition(state model.BookingState, now time.Time) (string, []any) {
	now = now.UTC()
	switch state {
	case model.StateCurrent:
		return ` AND b.start_date <= ? AND b.end_date >= ?`, []any{now, now}
	case model.StatePast:
		return ` AND b.end_date < ?`, []any{now}
	case model.StateFuture:
		return ` AND b.start_date > ?`, []any{now}
	case model.StateWaiting:
		return ` AND b.status = ?`, []any{model.StatusWaiting}
	case model.StateRejected:
		return ` AND b.status = ?`, []any{model.StatusRejected}
	default:
		return ``, nil
	}
}

// ListBookingsByBooker returns the booker's bookings matching the state,
// newest start first.
func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page repository.Page) ([]model.Booking, error) {
	cond, condArgs := stateCondition(state, now)
	limit, offset := page.LimitOffset()

	args := append([]any{bookerID}, condArgs...)
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.booker_id = ?`+cond+`
		 ORDER BY b.start_date DESC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing bookings by booker %d: %w", bookerID, err)
	}
	defer rows.Close()
	return scanBookings(rows, limit)
}

// ListBookingsByOwner returns bookings of all the owner's items matching the
// state, newest start first. The owner is on the item, not the booking, so
// this one needs a join.
func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page repository.Page) ([]model.Booking, error) {
	cond, condArgs := stateCondition(state, now)
	limit, offset := page.LimitOffset()

	args := append([]any{ownerID}, condArgs...)
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 JOIN items i ON i.id = b.item_id
		 WHERE i.owner_id = ?`+cond+`
		 ORDER BY b.start_date DESC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing bookings by owner %d: %w", ownerID, err)
	}
	defer rows.Close()
	return scanBookings(rows, limit)
}

// LastBookingForItem returns the most recent APPROVED booking that has
// already started, or (nil, nil) when there is none.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return db.oneBooking(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.item_id = ? AND b.start_date <= ? AND b.status = ?
		 ORDER BY b.start_date DESC
		 LIMIT 1`,
		itemID, now.UTC(), model.StatusApproved,
	)
}

// NextBookingForItem returns the soonest APPROVED booking that has not yet
// started, or (nil, nil) when there is none.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return db.oneBooking(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.item_id = ? AND b.start_date > ? AND b.status = ?
		 ORDER BY b.start_date ASC
		 LIMIT 1`,
		itemID, now.UTC(), model.StatusApproved,
	)
}

// oneBooking runs a query expected to yield at most one booking.
// Unlike GetBookingByID, "no row" is not an error here — last/next bookings
// are optional decorations on the item view.
func (db *DB) oneBooking(ctx context.Context, query string, args ...any) (*model.Booking, error) {
	var b model.Booking
	err := db.conn.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: finding booking: %w", err)
	}
	return &b, nil
}

// HasCompletedBooking reports whether the booker has any booking of the item
// that ended strictly before now. Status is deliberately ignored: having held
// the item at all is what unlocks commenting.
func (db *DB) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE booker_id = ? AND item_id = ? AND end_date < ?`,
		bookerID, itemID, now.UTC(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking completed bookings: %w", err)
	}
	return count > 0, nil
}

func scanBookings(rows *sql.Rows, capacity int) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0, capacity)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating bookings: %w", err)
	}
	return bookings, nil
}
