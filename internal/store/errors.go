package store

import (
	"fmt"
	"net/http"
)

// Error is a store-level failure that carries the HTTP status the API
// layer should answer with. Services translate these into their own
// domain errors where a friendlier message is wanted; the API error
// handler falls back to the status mapping here otherwise.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// Sentinel errors. Matched with errors.Is at service boundaries: a
// missing book or engagement record surfaces ErrNotFound, a duplicate
// slug or email surfaces ErrAlreadyExists.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}
)
