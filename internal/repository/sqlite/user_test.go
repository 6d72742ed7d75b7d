package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/shareit/internal/apperror"
)

func TestUserCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com")
	if user.ID == 0 {
		t.Fatal("CreateUser did not assign an id")
	}

	got, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Name != "Alice" || got.Email != "alice@example.com" {
		t.Errorf("got %+v", got)
	}

	user.Name = "Alicia"
	if err := db.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	got, err = db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Name != "Alicia" {
		t.Errorf("Name = %q, want Alicia", got.Name)
	}

	if err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := db.GetUserByID(ctx, user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := db.DeleteUser(ctx, user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteUser() error = %v, want ErrNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users, err := db.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("got %d users, want 0", len(users))
	}

	seedUser(t, db, "Alice", "alice@example.com")
	seedUser(t, db, "Bob", "bob@example.com")

	users, err = db.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}

func TestUserEmailTaken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com")

	taken, err := db.EmailTaken(ctx, "alice@example.com", 0)
	if err != nil {
		t.Fatalf("EmailTaken() error = %v", err)
	}
	if !taken {
		t.Error("EmailTaken() = false, want true")
	}

	// Excluding the owner of the address: not a conflict.
	taken, err = db.EmailTaken(ctx, "alice@example.com", alice.ID)
	if err != nil {
		t.Fatalf("EmailTaken() error = %v", err)
	}
	if taken {
		t.Error("EmailTaken() excluding the holder = true, want false")
	}

	taken, err = db.EmailTaken(ctx, "nobody@example.com", 0)
	if err != nil {
		t.Fatalf("EmailTaken() error = %v", err)
	}
	if taken {
		t.Error("EmailTaken() for unused address = true, want false")
	}
}

func TestUserDelete_ReferencedByItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "Alice", "alice@example.com")
	seedItem(t, db, owner.ID, "Drill", true)

	// Foreign keys are on: a user who still owns items cannot be removed.
	if err := db.DeleteUser(ctx, owner.ID); err == nil {
		t.Error("DeleteUser() succeeded for a user with items, want FK error")
	}
	if _, err := db.GetUserByID(ctx, owner.ID); err != nil {
		t.Errorf("user vanished after failed delete: %v", err)
	}
}
