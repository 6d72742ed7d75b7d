package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/shareit/internal/model"
)

// newTestDB opens an in-memory database with the full schema. Each test gets
// its own database, so tests stay independent and can run in parallel.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testTime is a fixed reference instant; booking tests place windows
// relative to it and pass it as "now" to the state-filtered finders.
func testTime() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedItem(t *testing.T, db *DB, ownerID int64, name string, available bool) *model.Item {
	t.Helper()
	item := &model.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("failed to seed item %s: %v", name, err)
	}
	return item
}

func seedBooking(t *testing.T, db *DB, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()
	booking := &model.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	if err := db.CreateBooking(context.Background(), booking); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}
