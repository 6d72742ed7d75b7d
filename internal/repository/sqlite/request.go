package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

var _ repository.RequestRepository = (*DB)(nil)

// CreateRequest inserts a new item request and fills in the generated id.
// Created is set by the service (server-assigned "now"), stored in UTC.
func (db *DB) CreateRequest(ctx context.Context, request *model.ItemRequest) error {
	request.Created = request.Created.UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`,
		request.Description,
		request.RequestorID,
		request.Created,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading request id: %w", err)
	}
	request.ID = id
	return nil
}

// GetRequestByID retrieves a single item request.
func (db *DB) GetRequestByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	var r model.ItemRequest
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, description, requestor_id, created FROM requests WHERE id = ?`, id,
	).Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("request", id)
		}
		return nil, fmt.Errorf("sqlite: getting request %d: %w", id, err)
	}
	return &r, nil
}

// ListRequestsByRequestor returns all of one user's requests, newest first.
// No pagination — a single user's own requests are a bounded set.
func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, description, requestor_id, created
		 FROM requests
		 WHERE requestor_id = ?
		 ORDER BY created DESC`,
		requestorID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing requests by requestor %d: %w", requestorID, err)
	}
	defer rows.Close()
	return scanRequests(rows, 0)
}

// ListOtherRequests returns requests made by everyone except the given user,
// newest first, paginated.
func (db *DB) ListOtherRequests(ctx context.Context, excludingUserID int64, page repository.Page) ([]model.ItemRequest, error) {
	limit, offset := page.LimitOffset()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, description, requestor_id, created
		 FROM requests
		 WHERE requestor_id != ?
		 ORDER BY created DESC
		 LIMIT ? OFFSET ?`,
		excludingUserID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing other requests: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows, limit)
}

func scanRequests(rows *sql.Rows, capacity int) ([]model.ItemRequest, error) {
	requests := make([]model.ItemRequest, 0, capacity)
	for rows.Next() {
		var r model.ItemRequest
		if err := rows.Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created); err != nil {
			return nil, fmt.Errorf("sqlite: scanning request row: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating requests: %w", err)
	}
	return requests, nil
}
