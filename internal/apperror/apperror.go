package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error classes. Services wrap one of these in an *AppError at the
// point of violation; the HTTP layer maps each class to a status code with
// errors.Is. Domain errors propagate unchanged — they are request-scoped
// validation failures, not transient faults, so nothing retries them.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrInvalidDate      = errors.New("invalid booking dates")
	ErrItemUnavailable  = errors.New("item not available")
	ErrOwnItemBooking   = errors.New("own item booking")
	ErrForbidden        = errors.New("forbidden")
	ErrNotUniqueEmail   = errors.New("email already in use")
	ErrNotBooker        = errors.New("no completed booking")
	ErrUnsupportedState = errors.New("unsupported booking state")
)

type AppError struct {
	Err     error  // sentinel class, checked with errors.Is
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func InvalidDate(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidDate,
		Message: message,
	}
}

// ItemUnavailable covers both booking-time unavailability and the "booking
// already decided" case at approval time. Callers see them as the same
// condition.
func ItemUnavailable(message string) *AppError {
	return &AppError{
		Err:     ErrItemUnavailable,
		Message: message,
	}
}

func OwnItemBooking() *AppError {
	return &AppError{
		Err:     ErrOwnItemBooking,
		Message: "booking your own item is not possible",
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func NotUniqueEmail(email string) *AppError {
	return &AppError{
		Err:     ErrNotUniqueEmail,
		Message: fmt.Sprintf("a user with email %s already exists", email),
	}
}

func NotBooker(itemID int64) *AppError {
	return &AppError{
		Err:     ErrNotBooker,
		Message: fmt.Sprintf("commenting requires a completed booking of item %d", itemID),
	}
}

func UnsupportedState(state string) *AppError {
	return &AppError{
		Err:     ErrUnsupportedState,
		Message: fmt.Sprintf("Unknown state: %s", state),
	}
}
