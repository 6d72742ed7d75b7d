package model

import "time"

// ItemRequest is a user's ask for an item nobody has listed yet.
// Requests are immutable once created. They are fulfilled implicitly: any
// item whose RequestID points here counts as an answer to the request.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"` // server-assigned at creation
}

// RequestWithItems is the request view returned by the API: the request plus
// every item offered against it. Items is always non-nil — a request nobody
// has answered carries an empty list, not null.
type RequestWithItems struct {
	ItemRequest
	Items []Item `json:"items"`
}
