package model

import "time"

// Comment is post-rental feedback on an item. Only a user whose booking of
// the item has already ended may comment; comments are immutable.
type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"itemId"`
	AuthorID int64     `json:"authorId"`
	Created  time.Time `json:"created"` // server-assigned at creation
}

// CommentView is the comment shape returned by the API — the author id is
// replaced with the author's display name.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// NewCommentView assembles the API view from a comment and its resolved author.
func NewCommentView(c *Comment, author *User) CommentView {
	return CommentView{ID: c.ID, Text: c.Text, AuthorName: author.Name, Created: c.Created}
}
