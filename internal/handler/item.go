package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/service"
)

// ItemHandler serves the /items routes, comments included — a comment is
// always posted against an item.
type ItemHandler struct {
	items  *service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(items *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, logger: logger}
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"` // pointer: the flag is mandatory, absence is an error
	RequestID   *int64 `json:"requestId"` // optional link to the request this item answers
}

// HandleCreate lists a new item for the acting user.
//
// HTTP: POST /items
// BODY: {"name": "drill", "description": "cordless drill", "available": true, "requestId": 3}
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid item JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	item, err := h.items.Create(r.Context(), req.Name, req.Description, req.Available, req.RequestID, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HandleUpdate applies a partial update to an item. Owner only.
//
// HTTP: PATCH /items/{itemId}
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("invalid item patch JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	item, err := h.items.Update(r.Context(), itemID, patch, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleGetByID returns the item detail view. The acting user decides how
// much the view shows: owners also see the booking schedule.
//
// HTTP: GET /items/{itemId}
func (h *ItemHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.items.GetByID(r.Context(), itemID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleListByOwner returns the acting user's own items.
//
// HTTP: GET /items?from=0&size=10
func (h *ItemHandler) HandleListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.items.ListByOwner(r.Context(), from, size, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleSearch returns available items matching the text query.
//
// HTTP: GET /items/search?text=drill&from=0&size=10
func (h *ItemHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.items.Search(r.Context(), from, size, r.URL.Query().Get("text"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// HandleAddComment posts post-rental feedback on an item.
//
// HTTP: POST /items/{itemId}/comment
// BODY: {"text": "worked great"}
func (h *ItemHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	comment, err := h.items.AddComment(r.Context(), itemID, req.Text, authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
