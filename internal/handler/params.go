package handler

import (
	"net/http"
	"strconv"

	"github.com/sakif/shareit/internal/apperror"
)

// SharerHeader carries the acting user's id on every authenticated route.
// The gateway in front of this service resolves the identity and forwards it
// here; this service trusts the header as given and performs no
// authentication of its own.
const SharerHeader = "X-Sharer-User-Id"

// sharerID extracts the acting user id from the request header.
// A missing or malformed header is a validation error — the service layer is
// the one to decide whether the id actually exists.
func sharerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(SharerHeader)
	if raw == "" {
		return 0, apperror.ValidationFailed(SharerHeader, "acting user header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(SharerHeader, "acting user header must be an integer id")
	}
	return id, nil
}

// pathID extracts an int64 path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be an integer id")
	}
	return id, nil
}

// pagination reads the from/size query parameters.
// from is a zero-based offset defaulting to 0; size defaults to 10. Negative
// values are rejected here so the repository only ever sees sane pages.
func pagination(r *http.Request) (from, size int, err error) {
	from, err = queryInt(r, "from", 0)
	if err != nil || from < 0 {
		return 0, 0, apperror.ValidationFailed("from", "from must be a non-negative integer")
	}
	size, err = queryInt(r, "size", 10)
	if err != nil || size <= 0 {
		return 0, 0, apperror.ValidationFailed("size", "size must be a positive integer")
	}
	return from, size, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
