package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
)

func newUserEnv(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	return NewUserService(users, testLogger()), users
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserEnv(t)

	user, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestUserCreate_Validation(t *testing.T) {
	svc, _ := newUserEnv(t)

	tests := []struct {
		name     string
		userName string
		email    string
	}{
		{"blank name", "  ", "alice@example.com"},
		{"blank email", "Alice", ""},
		{"malformed email", "Alice", "not-an-email"},
		{"email without domain", "Alice", "alice@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.userName, tt.email)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, _ := newUserEnv(t)

	if _, err := svc.Create(context.Background(), "Alice", "alice@example.com"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := svc.Create(context.Background(), "Impostor", "alice@example.com")
	if !errors.Is(err, apperror.ErrNotUniqueEmail) {
		t.Errorf("Create() error = %v, want ErrNotUniqueEmail", err)
	}
}

func TestUserUpdate_Partial(t *testing.T) {
	svc, _ := newUserEnv(t)
	user, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Name only; email stays.
	updated, err := svc.Update(context.Background(), user.ID, model.UserPatch{Name: strPtr("Alicia")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Alicia" || updated.Email != "alice@example.com" {
		t.Errorf("user = %+v", updated)
	}

	// Blank fields are ignored, not applied.
	updated, err = svc.Update(context.Background(), user.ID, model.UserPatch{Name: strPtr(""), Email: strPtr("")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Alicia" || updated.Email != "alice@example.com" {
		t.Errorf("blank patch changed user: %+v", updated)
	}
}

func TestUserUpdate_Email(t *testing.T) {
	svc, _ := newUserEnv(t)
	alice, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), "Bob", "bob@example.com"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Keeping your own email is not a conflict.
	if _, err := svc.Update(context.Background(), alice.ID, model.UserPatch{Email: strPtr("alice@example.com")}); err != nil {
		t.Errorf("Update() with own email error = %v", err)
	}

	// Taking someone else's is.
	_, err = svc.Update(context.Background(), alice.ID, model.UserPatch{Email: strPtr("bob@example.com")})
	if !errors.Is(err, apperror.ErrNotUniqueEmail) {
		t.Errorf("Update() error = %v, want ErrNotUniqueEmail", err)
	}

	// And a malformed replacement is rejected.
	_, err = svc.Update(context.Background(), alice.ID, model.UserPatch{Email: strPtr("nope")})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	svc, _ := newUserEnv(t)

	_, err := svc.Update(context.Background(), 999, model.UserPatch{Name: strPtr("Ghost")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete(t *testing.T) {
	svc, _ := newUserEnv(t)
	user, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	svc, _ := newUserEnv(t)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("got %d users, want 0", len(users))
	}

	for _, u := range []struct{ name, email string }{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
	} {
		if _, err := svc.Create(context.Background(), u.name, u.email); err != nil {
			t.Fatalf("Create(%s) error = %v", u.name, err)
		}
	}

	users, err = svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}
