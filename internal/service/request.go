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

// RequestService owns the request board: users post requests for items they
// wish to borrow, and every view of a request is aggregated with the items
// offered against it.
type RequestService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	items    repository.ItemRepository
	logger   *slog.Logger

	now func() time.Time
}

// NewRequestService creates a RequestService.
func NewRequestService(
	requests repository.RequestRepository,
	users repository.UserRepository,
	items repository.ItemRepository,
	logger *slog.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger,
		now:      time.Now,
	}
}

// Create posts a new request. Created is server-assigned; requests are
// immutable afterwards.
func (s *RequestService) Create(ctx context.Context, description string, requestorID int64) (*model.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, requestorID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.ValidationFailed("description", "request description is required")
	}
	if len(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("request description must be %d characters or less", MaxDescriptionLength))
	}

	request := &model.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.now(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		s.logger.Error("failed to create request",
			slog.Int64("requestorId", requestorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating request: %w", err)
	}

	s.logger.Info("request created",
		slog.Int64("id", request.ID),
		slog.Int64("requestorId", requestorID),
	)
	return request, nil
}

// ListByRequestor returns all of the acting user's own requests, newest
// first, each with its fulfilling items.
func (s *RequestService) ListByRequestor(ctx context.Context, requestorID int64) ([]model.RequestWithItems, error) {
	if _, err := s.users.GetUserByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListRequestsByRequestor(ctx, requestorID)
	if err != nil {
		s.logger.Error("failed to list requests by requestor",
			slog.Int64("requestorId", requestorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// ListOthers returns requests made by everyone except the acting user,
// newest first, paginated — the board a lender browses to find something
// worth listing.
func (s *RequestService) ListOthers(ctx context.Context, from, size int, excludingUserID int64) ([]model.RequestWithItems, error) {
	if _, err := s.users.GetUserByID(ctx, excludingUserID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListOtherRequests(ctx, excludingUserID, repository.Page{From: from, Size: size})
	if err != nil {
		s.logger.Error("failed to list other requests",
			slog.Int64("excludingUserId", excludingUserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// GetByID returns one request with its fulfilling items. Any registered user
// may view any request.
func (s *RequestService) GetByID(ctx context.Context, requestID, userID int64) (*model.RequestWithItems, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	withItems, err := s.attachItems(ctx, []model.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &withItems[0], nil
}

// attachItems decorates each request with the items whose requestId links
// back to it. A request nobody answered gets an empty slice, never nil.
func (s *RequestService) attachItems(ctx context.Context, requests []model.ItemRequest) ([]model.RequestWithItems, error) {
	result := make([]model.RequestWithItems, 0, len(requests))
	for i := range requests {
		items, err := s.items.ListItemsByRequest(ctx, requests[i].ID)
		if err != nil {
			return nil, fmt.Errorf("listing items for request %d: %w", requests[i].ID, err)
		}
		result = append(result, model.RequestWithItems{
			ItemRequest: requests[i],
			Items:       items,
		})
	}
	return result, nil
}
