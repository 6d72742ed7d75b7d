package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

var _ repository.ItemRepository = (*DB)(nil)

// CreateItem inserts a new item and fills in the generated id.
func (db *DB) CreateItem(ctx context.Context, item *model.Item) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO items (name, description, available, owner_id, request_id)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID, // nil maps to NULL for spontaneous listings
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading item id: %w", err)
	}
	item.ID = id
	return nil
}

// GetItemByID retrieves a single item.
func (db *DB) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, available, owner_id, request_id
		 FROM items WHERE id = ?`, id,
	).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID, // *int64 scans NULL as nil
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("item", id)
		}
		return nil, fmt.Errorf("sqlite: getting item %d: %w", id, err)
	}
	return &item, nil
}

// UpdateItem writes the mutable item columns. Ownership and the request link
// never change after creation, so they are not part of the UPDATE.
func (db *DB) UpdateItem(ctx context.Context, item *model.Item) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`,
		item.Name, item.Description, item.Available, item.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating item %d: %w", item.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("item", item.ID)
	}
	return nil
}

// ListItemsByOwner returns one owner's items in creation order, paginated.
func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, page repository.Page) ([]model.Item, error) {
	limit, offset := page.LimitOffset()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, available, owner_id, request_id
		 FROM items
		 WHERE owner_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items by owner %d: %w", ownerID, err)
	}
	defer rows.Close()
	return scanItems(rows, limit)
}

// SearchItems matches available items whose name or description contains the
// text, case-insensitively.
//
// LIKE IN SQLITE:
// LIKE is case-insensitive for ASCII by default, but we LOWER() both sides
// anyway so the behaviour doesn't depend on the driver's PRAGMA settings.
// The text is passed as a parameter inside the pattern — string concatenation
// happens on the bound value, never in the SQL itself.
func (db *DB) SearchItems(ctx context.Context, text string, page repository.Page) ([]model.Item, error) {
	limit, offset := page.LimitOffset()
	pattern := "%" + text + "%"
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, available, owner_id, request_id
		 FROM items
		 WHERE available = 1
		   AND (LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows, limit)
}

// ListItemsByRequest returns the items offered against a request.
func (db *DB) ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, available, owner_id, request_id
		 FROM items
		 WHERE request_id = ?
		 ORDER BY id`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items by request %d: %w", requestID, err)
	}
	defer rows.Close()
	return scanItems(rows, 0)
}

// scanItems drains an item result set. Every item query selects the same
// columns in the same order, so the scan loop is shared.
func scanItems(rows *sql.Rows, capacity int) ([]model.Item, error) {
	items := make([]model.Item, 0, capacity)
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.RequestID,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning item row: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating items: %w", err)
	}
	return items, nil
}
