package request

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL      = errors.New("base URL must be absolute")
	ErrInvalidProxyURL     = errors.New("invalid proxy URL")
	ErrTokenURLRequired    = errors.New("token URL is required")
	ErrCredentialsRequired = errors.New("client credentials or an access token are required")
	ErrMissingAccessToken  = errors.New("token response did not include an access token")
)

// TransportError reports a failure below the HTTP layer: the connection could
// not be made, the call timed out, or the response could not be read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline or network timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPError reports a response whose status code indicates failure.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Reason     string
	Body       []byte
	// Detail holds the indented JSON body when the server returned JSON.
	Detail string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%d %s: %s %s", e.StatusCode, e.Reason, e.Method, e.URL)
	if e.Detail != "" {
		msg += "\n" + e.Detail
	}

	return msg
}

// Unauthorized reports whether the status code is 401.
func (e *HTTPError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding JSON response: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// isUnauthorized reports whether a call ended in 401, either as a plain
// response or as an *HTTPError raised by a strict inner layer.
func isUnauthorized(resp *Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		return true
	}

	var httpErr *HTTPError

	return errors.As(err, &httpErr) && httpErr.Unauthorized()
}
