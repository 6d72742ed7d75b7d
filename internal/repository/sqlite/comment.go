package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

var _ repository.CommentRepository = (*DB)(nil)

// CreateComment inserts a new comment and fills in the generated id.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.Created = comment.Created.UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`,
		comment.Text,
		comment.ItemID,
		comment.AuthorID,
		comment.Created,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListCommentsByItem returns an item's comments, oldest first.
func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, item_id, author_id, created
		 FROM comments
		 WHERE item_id = ?
		 ORDER BY created`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for item %d: %w", itemID, err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.Created); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}
	return comments, nil
}
