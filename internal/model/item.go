package model

// Item is a thing its owner shares with other users. Only the owner may change
// it, and it is never deleted. An item may optionally answer an ItemRequest,
// in which case RequestID links back to the request it fulfils.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"` // nil when the item was listed spontaneously
}

// ItemShort is the compact item shape embedded in booking responses.
type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Short converts an Item to its embedded form.
func (i *Item) Short() ItemShort {
	return ItemShort{ID: i.ID, Name: i.Name}
}

// ItemPatch carries a partial update for an item. nil means "leave unchanged".
// Available uses presence (nil vs non-nil), not truthiness — sending
// `"available": false` must actually flip the flag off.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetail is the item view returned by single-item lookups and owner
// listings. Comments are always attached; LastBooking and NextBooking are
// populated only when the caller owns the item (other users have no business
// seeing the booking schedule).
type ItemDetail struct {
	Item
	LastBooking *BookingShort `json:"lastBooking,omitempty"`
	NextBooking *BookingShort `json:"nextBooking,omitempty"`
	Comments    []CommentView `json:"comments"`
}
