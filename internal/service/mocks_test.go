package service

// MOCK REPOSITORIES:
// A mock is a fake implementation of an interface used in tests. Instead of
// talking to SQLite, these store data in in-memory maps. The services don't
// know or care which implementation they get — that is the point of the
// repository interfaces.
//
// In production code, you'd use a library like `github.com/stretchr/testify/mock`
// for more sophisticated mocks. Hand-written mocks keep the behaviour visible.

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

// ---- users ----

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) EmailTaken(_ context.Context, email string, excludingID int64) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludingID {
			return true, nil
		}
	}
	return false, nil
}

// ---- items ----

type mockItemRepo struct {
	items  map[int64]*model.Item
	nextID int64

	searchCalls int // counts SearchItems invocations; blank queries must not reach here
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[int64]*model.Item)}
}

func (m *mockItemRepo) CreateItem(_ context.Context, item *model.Item) error {
	m.nextID++
	item.ID = m.nextID
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockItemRepo) GetItemByID(_ context.Context, id int64) (*model.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("item", id)
	}
	result := *item
	return &result, nil
}

func (m *mockItemRepo) UpdateItem(_ context.Context, item *model.Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return apperror.NotFound("item", item.ID)
	}
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockItemRepo) ListItemsByOwner(_ context.Context, ownerID int64, page repository.Page) ([]model.Item, error) {
	result := make([]model.Item, 0)
	for _, i := range m.items {
		if i.OwnerID == ownerID {
			result = append(result, *i)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginateItems(result, page), nil
}

func (m *mockItemRepo) SearchItems(_ context.Context, text string, page repository.Page) ([]model.Item, error) {
	m.searchCalls++
	needle := strings.ToLower(text)
	result := make([]model.Item, 0)
	for _, i := range m.items {
		if !i.Available {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name), needle) ||
			strings.Contains(strings.ToLower(i.Description), needle) {
			result = append(result, *i)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return paginateItems(result, page), nil
}

func (m *mockItemRepo) ListItemsByRequest(_ context.Context, requestID int64) ([]model.Item, error) {
	result := make([]model.Item, 0)
	for _, i := range m.items {
		if i.RequestID != nil && *i.RequestID == requestID {
			result = append(result, *i)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func paginateItems(items []model.Item, page repository.Page) []model.Item {
	limit, offset := page.LimitOffset()
	if offset >= len(items) {
		return []model.Item{}
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---- bookings ----

// mockBookingRepo needs the item repo to resolve owners for the by-owner
// listing, the same join the SQL implementation does.
type mockBookingRepo struct {
	bookings map[int64]*model.Booking
	items    *mockItemRepo
	nextID   int64
}

func newMockBookingRepo(items *mockItemRepo) *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[int64]*model.Booking), items: items}
}

func (m *mockBookingRepo) CreateBooking(_ context.Context, booking *model.Booking) error {
	m.nextID++
	booking.ID = m.nextID
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *mockBookingRepo) GetBookingByID(_ context.Context, id int64) (*model.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, apperror.NotFound("booking", id)
	}
	result := *booking
	return &result, nil
}

func (m *mockBookingRepo) UpdateBookingStatus(_ context.Context, id int64, status model.BookingStatus) error {
	booking, ok := m.bookings[id]
	if !ok {
		return apperror.NotFound("booking", id)
	}
	booking.Status = status
	return nil
}

func matchesState(b *model.Booking, state model.BookingState, now time.Time) bool {
	switch state {
	case model.StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case model.StatePast:
		return now.After(b.End)
	case model.StateFuture:
		return now.Before(b.Start)
	case model.StateWaiting:
		return b.Status == model.StatusWaiting
	case model.StateRejected:
		return b.Status == model.StatusRejected
	default:
		return true
	}
}

func (m *mockBookingRepo) ListBookingsByBooker(_ context.Context, bookerID int64, state model.BookingState, now time.Time, page repository.Page) ([]model.Booking, error) {
	result := make([]model.Booking, 0)
	for _, b := range m.bookings {
		if b.BookerID == bookerID && matchesState(b, state, now) {
			result = append(result, *b)
		}
	}
	return sortAndPaginateBookings(result, page), nil
}

func (m *mockBookingRepo) ListBookingsByOwner(_ context.Context, ownerID int64, state model.BookingState, now time.Time, page repository.Page) ([]model.Booking, error) {
	result := make([]model.Booking, 0)
	for _, b := range m.bookings {
		item, ok := m.items.items[b.ItemID]
		if ok && item.OwnerID == ownerID && matchesState(b, state, now) {
			result = append(result, *b)
		}
	}
	return sortAndPaginateBookings(result, page), nil
}

func (m *mockBookingRepo) LastBookingForItem(_ context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	var last *model.Booking
	for _, b := range m.bookings {
		if b.ItemID != itemID || b.Status != model.StatusApproved || b.Start.After(now) {
			continue
		}
		if last == nil || b.Start.After(last.Start) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	result := *last
	return &result, nil
}

func (m *mockBookingRepo) NextBookingForItem(_ context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	var next *model.Booking
	for _, b := range m.bookings {
		if b.ItemID != itemID || b.Status != model.StatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	result := *next
	return &result, nil
}

func (m *mockBookingRepo) HasCompletedBooking(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range m.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func sortAndPaginateBookings(bookings []model.Booking, page repository.Page) []model.Booking {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.After(bookings[j].Start) })
	limit, offset := page.LimitOffset()
	if offset >= len(bookings) {
		return []model.Booking{}
	}
	bookings = bookings[offset:]
	if limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}

// ---- requests ----

type mockRequestRepo struct {
	requests map[int64]*model.ItemRequest
	nextID   int64
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[int64]*model.ItemRequest)}
}

func (m *mockRequestRepo) CreateRequest(_ context.Context, request *model.ItemRequest) error {
	m.nextID++
	request.ID = m.nextID
	stored := *request
	m.requests[request.ID] = &stored
	return nil
}

func (m *mockRequestRepo) GetRequestByID(_ context.Context, id int64) (*model.ItemRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, apperror.NotFound("request", id)
	}
	result := *request
	return &result, nil
}

func (m *mockRequestRepo) ListRequestsByRequestor(_ context.Context, requestorID int64) ([]model.ItemRequest, error) {
	result := make([]model.ItemRequest, 0)
	for _, r := range m.requests {
		if r.RequestorID == requestorID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	return result, nil
}

func (m *mockRequestRepo) ListOtherRequests(_ context.Context, excludingUserID int64, page repository.Page) ([]model.ItemRequest, error) {
	result := make([]model.ItemRequest, 0)
	for _, r := range m.requests {
		if r.RequestorID != excludingUserID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	limit, offset := page.LimitOffset()
	if offset >= len(result) {
		return []model.ItemRequest{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// ---- comments ----

type mockCommentRepo struct {
	comments map[int64]*model.Comment
	nextID   int64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*model.Comment)}
}

func (m *mockCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	m.nextID++
	comment.ID = m.nextID
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockCommentRepo) ListCommentsByItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	result := make([]model.Comment, 0)
	for _, c := range m.comments {
		if c.ItemID == itemID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.Before(result[j].Created) })
	return result, nil
}
