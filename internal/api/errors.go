package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure for the view-model layer.
type Kind int

const (
	// KindNetwork means no usable response arrived at all.
	KindNetwork Kind = iota + 1
	// KindUnauthorized covers missing/invalid tokens and insufficient roles.
	KindUnauthorized
	// KindValidation means the server rejected the payload.
	KindValidation
	// KindNotFound means the addressed resource no longer exists.
	KindNotFound
	// KindServer covers everything else the server reports.
	KindServer
)

// Error is a classified API failure. Message carries the server-supplied
// text when the response had one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return "api: request failed"
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict,
		status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// Message returns the server-supplied message from err when there is one,
// falling back to the given text otherwise. View-models use it to honor
// "server message verbatim, else a generic fallback".
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}
