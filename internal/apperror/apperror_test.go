// GO TESTING BASICS:
// 1. Test files MUST end in _test.go — Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// This is Go's idiomatic pattern for testing multiple cases.
// Instead of writing a separate test function per error class, we define a
// slice of test cases and loop over them.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string // Descriptive name for test output
		err       error  // The error to test
		target    error  // What we expect it to match
		wantMatch bool   // Should errors.Is() return true?
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("item", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "InvalidDate wraps ErrInvalidDate",
			err:       InvalidDate("end must be after start"),
			target:    ErrInvalidDate,
			wantMatch: true,
		},
		{
			name:      "ItemUnavailable wraps ErrItemUnavailable",
			err:       ItemUnavailable("item is not available"),
			target:    ErrItemUnavailable,
			wantMatch: true,
		},
		{
			name:      "OwnItemBooking wraps ErrOwnItemBooking",
			err:       OwnItemBooking(),
			target:    ErrOwnItemBooking,
			wantMatch: true,
		},
		{
			name:      "NotUniqueEmail wraps ErrNotUniqueEmail",
			err:       NotUniqueEmail("a@b.c"),
			target:    ErrNotUniqueEmail,
			wantMatch: true,
		},
		{
			name:      "NotBooker wraps ErrNotBooker",
			err:       NotBooker(7),
			target:    ErrNotBooker,
			wantMatch: true,
		},
		{
			name:      "UnsupportedState wraps ErrUnsupportedState",
			err:       UnsupportedState("SOMEDAY"),
			target:    ErrUnsupportedState,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrForbidden",
			err:       NotFound("user", 1),
			target:    ErrForbidden,
			wantMatch: false,
		},
		{
			name:      "ItemUnavailable does NOT match ErrInvalidDate",
			err:       ItemUnavailable("nope"),
			target:    ErrInvalidDate,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Services wrap domain errors with fmt.Errorf("%w", ...) on the way up.
	// errors.Is must still find the sentinel through the chain.
	wrapped := fmt.Errorf("creating booking: %w", OwnItemBooking())
	if !errors.Is(wrapped, ErrOwnItemBooking) {
		t.Error("errors.Is() did not find ErrOwnItemBooking through wrapping")
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", UnsupportedState("MAYBE"))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() did not extract *AppError")
	}
	if appErr.Message != "Unknown state: MAYBE" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Unknown state: MAYBE")
	}
}
