package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` verifies at compile time that *DB implements the
// interface. Without it, a missing method would only surface at the call
// site that passes *DB where the interface is expected.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user and fills in the generated id.
//
// ID GENERATION:
// The id column is INTEGER PRIMARY KEY AUTOINCREMENT — SQLite assigns it and
// LastInsertId hands it back. The database is the only id authority; there is
// no in-process counter to drift or collide.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email) VALUES (?, ?)`,
		user.Name,
		user.Email,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a single user.
// sql.ErrNoRows is translated into the domain NotFound error here — the
// service layer never sees database/sql sentinels.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateUser writes the full user row. RowsAffected detects "not found"
// without a separate SELECT.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ? WHERE id = ?`,
		user.Name, user.Email, user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

// DeleteUser removes a user row. No cascade: items, bookings, and comments
// keep their references, and the foreign keys reject deleting a user that
// other rows still point at.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// ListUsers returns every user, oldest first.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}

// EmailTaken reports whether a different user already holds the email.
// The UNIQUE constraint on the column is the backstop; this check exists so
// the service can fail with the domain NotUniqueEmail error instead of a
// raw constraint violation.
func (db *DB) EmailTaken(ctx context.Context, email string, excludingID int64) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`,
		email, excludingID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking email %s: %w", email, err)
	}
	return count > 0, nil
}
