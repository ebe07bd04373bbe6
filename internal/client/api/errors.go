package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no HTTP response was received at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the server rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a server-rejected request: a non-2xx response with an optional
// human-readable message from the body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// UserMessage extracts the text to show the user for a failed call: the
// server's message verbatim when one was provided, the per-operation fallback
// otherwise (including transport failures, which carry no message).
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
