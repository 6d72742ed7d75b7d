package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

// Validation caps. Request and comment texts share the description limit.
const (
	MaxItemNameLength    = 255
	MaxDescriptionLength = 1000
	MaxCommentLength     = 1000
)

// ItemService owns the item catalog and, because comments hang off items,
// the comment ledger as well.
type ItemService struct {
	items    repository.ItemRepository
	users    repository.UserRepository
	bookings repository.BookingRepository
	comments repository.CommentRepository
	requests repository.RequestRepository
	logger   *slog.Logger

	now func() time.Time
}

// NewItemService creates an ItemService.
func NewItemService(
	items repository.ItemRepository,
	users repository.UserRepository,
	bookings repository.BookingRepository,
	comments repository.CommentRepository,
	requests repository.RequestRepository,
	logger *slog.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		logger:   logger,
		now:      time.Now,
	}
}

// Create lists a new item for the owner. available is a pointer because the
// field is mandatory on create — an absent flag is a validation error, not
// "false by default". When requestID is set the referenced request must
// exist; the new item then counts as fulfilling it.
func (s *ItemService) Create(ctx context.Context, name, description string, available *bool, requestID *int64, ownerID int64) (*model.Item, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "item name is required")
	}
	if len(name) > MaxItemNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("item name must be %d characters or less", MaxItemNameLength))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.ValidationFailed("description", "item description is required")
	}
	if available == nil {
		return nil, apperror.ValidationFailed("available", "item availability is required")
	}

	if requestID != nil {
		if _, err := s.requests.GetRequestByID(ctx, *requestID); err != nil {
			return nil, err
		}
	}

	item := &model.Item{
		Name:        name,
		Description: description,
		Available:   *available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.items.CreateItem(ctx, item); err != nil {
		s.logger.Error("failed to create item",
			slog.String("name", name),
			slog.Int64("ownerId", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating item: %w", err)
	}

	s.logger.Info("item created",
		slog.Int64("id", item.ID),
		slog.Int64("ownerId", ownerID),
	)
	return item, nil
}

// Update applies a partial update to an item. Only the owner may update.
// nil patch fields are left unchanged; blank strings are treated as absent
// for name and description; Available applies whenever present, including
// an explicit false.
func (s *ItemService) Update(ctx context.Context, itemID int64, patch model.ItemPatch, userID int64) (*model.Item, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, apperror.Forbidden(fmt.Sprintf("user %d is not the owner of item %d", userID, itemID))
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			if len(name) > MaxItemNameLength {
				return nil, apperror.ValidationFailed("name",
					fmt.Sprintf("item name must be %d characters or less", MaxItemNameLength))
			}
			item.Name = name
		}
	}
	if patch.Description != nil {
		if description := strings.TrimSpace(*patch.Description); description != "" {
			item.Description = description
		}
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		s.logger.Error("failed to update item",
			slog.Int64("id", itemID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating item: %w", err)
	}

	s.logger.Info("item updated", slog.Int64("id", itemID))
	return item, nil
}

// GetByID returns the item detail view. Comments are attached for everyone;
// the last and next approved bookings only when the caller owns the item.
func (s *ItemService) GetByID(ctx context.Context, itemID, userID int64) (*model.ItemDetail, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, item, item.OwnerID == userID)
}

// ListByOwner returns the owner's items as detail views (with booking
// schedule), paginated.
func (s *ItemService) ListByOwner(ctx context.Context, from, size int, ownerID int64) ([]model.ItemDetail, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.ListItemsByOwner(ctx, ownerID, repository.Page{From: from, Size: size})
	if err != nil {
		s.logger.Error("failed to list items by owner",
			slog.Int64("ownerId", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing items: %w", err)
	}

	details := make([]model.ItemDetail, 0, len(items))
	for i := range items {
		detail, err := s.buildDetail(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Search returns available items matching the text. A blank query returns an
// empty list without touching the repository at all — that is part of the
// contract, not an optimisation shortcut someone may remove.
func (s *ItemService) Search(ctx context.Context, from, size int, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}

	items, err := s.items.SearchItems(ctx, text, repository.Page{From: from, Size: size})
	if err != nil {
		s.logger.Error("failed to search items",
			slog.String("text", text),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("searching items: %w", err)
	}
	return items, nil
}

// AddComment records post-rental feedback. The author must have a booking of
// this item whose end has already passed; anyone else gets NotBooker.
func (s *ItemService) AddComment(ctx context.Context, itemID int64, text string, authorID int64) (*model.CommentView, error) {
	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "comment text is required")
	}
	if len(text) > MaxCommentLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("comment text must be %d characters or less", MaxCommentLength))
	}

	completed, err := s.bookings.HasCompletedBooking(ctx, authorID, item.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("checking bookings for comment: %w", err)
	}
	if !completed {
		return nil, apperror.NotBooker(item.ID)
	}

	comment := &model.Comment{
		Text:     text,
		ItemID:   item.ID,
		AuthorID: authorID,
		Created:  s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.Int64("itemId", itemID),
			slog.Int64("authorId", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("id", comment.ID),
		slog.Int64("itemId", itemID),
	)

	view := model.NewCommentView(comment, author)
	return &view, nil
}

// buildDetail decorates an item with its comments and, for the owner, the
// last and next approved bookings.
func (s *ItemService) buildDetail(ctx context.Context, item *model.Item, forOwner bool) (*model.ItemDetail, error) {
	detail := &model.ItemDetail{Item: *item, Comments: []model.CommentView{}}

	comments, err := s.comments.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for item %d: %w", item.ID, err)
	}
	authors := make(map[int64]*model.User)
	for i := range comments {
		c := &comments[i]
		author, ok := authors[c.AuthorID]
		if !ok {
			author, err = s.users.GetUserByID(ctx, c.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[c.AuthorID] = author
		}
		detail.Comments = append(detail.Comments, model.NewCommentView(c, author))
	}

	if !forOwner {
		return detail, nil
	}

	now := s.now()
	last, err := s.bookings.LastBookingForItem(ctx, item.ID, now)
	if err != nil {
		return nil, fmt.Errorf("finding last booking for item %d: %w", item.ID, err)
	}
	if last != nil {
		short := last.Short()
		detail.LastBooking = &short
	}
	next, err := s.bookings.NextBookingForItem(ctx, item.ID, now)
	if err != nil {
		return nil, fmt.Errorf("finding next booking for item %d: %w", item.ID, err)
	}
	if next != nil {
		short := next.Short()
		detail.NextBooking = &short
	}
	return detail, nil
}
