package ctr

import (
	"errors"
	"net/http"

	"github.com/fivetwenty-io/threatresponse/pkg/request"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("client ID and secret or an access token are required")
	ErrUnknownRegion       = errors.New("unknown region")
	ErrIDRequired          = errors.New("entity ID is required")
	ErrUnknownEntity       = errors.New("unknown intel entity")
	ErrReadOnlyEntity      = errors.New("intel entity is read-only")
	ErrUnexpectedResult    = errors.New("unexpected route result")
)

// StatusCode returns the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *request.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var transportErr *request.TransportError

	return errors.As(err, &transportErr) && transportErr.Timeout()
}
