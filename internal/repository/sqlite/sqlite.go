// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. The service
// needs a single logical datastore accessed through simple finder operations,
// which is exactly the deployment shape SQLite serves best.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// TIMESTAMPS:
// All time.Time values are normalized to UTC before they hit the database.
// Booking-state queries compare stored start/end columns against a "now"
// parameter; with a single timezone those comparisons are exact.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only" import.
	// The sqlite package's init() function registers itself with database/sql as a
	// driver named "sqlite"; after this import, sql.Open("sqlite", ...) works.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods for
// all five entities. One type implementing every repository interface keeps
// the wiring in server.go trivial — the services each see only the interface
// they asked for.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/shareit.db"  → file-based database (persistent)
//   - ":memory:"         → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode:
	// Default SQLite locks the entire database during writes. WAL allows
	// concurrent reads while a write is happening — important for a web
	// server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (for backwards compatibility).
	// We turn them on: items reference users and requests, bookings reference
	// items and users, comments reference items and users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
// Wherever you call New(), immediately defer Close() — this flushes the WAL
// and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every start. Order matters: items reference requests, so the
// requests table must exist first.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			description  TEXT NOT NULL,
			requestor_id INTEGER NOT NULL REFERENCES users(id),
			created      DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_requests_requestor ON requests(requestor_id);
		CREATE INDEX IF NOT EXISTS idx_requests_created ON requests(created);
	`)
	if err != nil {
		return fmt.Errorf("creating requests table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			available   INTEGER NOT NULL DEFAULT 0,
			owner_id    INTEGER NOT NULL REFERENCES users(id),
			request_id  INTEGER REFERENCES requests(id)
		);
		CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);
		CREATE INDEX IF NOT EXISTS idx_items_request ON items(request_id);
	`)
	if err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}

	// status is constrained at the schema level too — the service is the real
	// gatekeeper, but a CHECK makes a corrupted row impossible to insert.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS bookings (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			start_date DATETIME NOT NULL,
			end_date   DATETIME NOT NULL,
			item_id    INTEGER NOT NULL REFERENCES items(id),
			booker_id  INTEGER NOT NULL REFERENCES users(id),
			status     TEXT NOT NULL DEFAULT 'WAITING'
			           CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED'))
		);
		CREATE INDEX IF NOT EXISTS idx_bookings_booker ON bookings(booker_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_item ON bookings(item_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_start ON bookings(start_date);
	`)
	if err != nil {
		return fmt.Errorf("creating bookings table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			text      TEXT NOT NULL,
			item_id   INTEGER NOT NULL REFERENCES items(id),
			author_id INTEGER NOT NULL REFERENCES users(id),
			created   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}
