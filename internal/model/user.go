// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// User represents a registered account. Users are the root entity: items,
// bookings, requests, and comments all reference a user by id.
//
// WHY int64 IDs?
// Entity ids are assigned by the storage layer (AUTOINCREMENT integer keys).
// We deliberately avoid any process-wide id counter — the database is the only
// authority on identity, so two server instances can never mint the same id.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"` // unique across all users, enforced in service + schema
}

// UserShort is the compact user shape embedded in booking responses.
type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Short converts a User to its embedded form.
func (u *User) Short() UserShort {
	return UserShort{ID: u.ID, Name: u.Name}
}

// UserPatch carries a partial update for a user.
//
// WHY POINTER FIELDS?
// A PATCH body may omit a field entirely, and "omitted" must mean "unchanged".
// With plain strings we couldn't tell "" (sent empty) from "not sent at all".
// A nil pointer means the field was absent; a non-nil pointer carries the value.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
