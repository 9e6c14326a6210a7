package ctr

import (
	"strings"

	"github.com/fivetwenty-io/threatresponse/pkg/request"
)

// Session is the value every route handler receives as its owner: the request
// client at the top of the middleware chain and the endpoints it serves.
type Session struct {
	HTTP      *request.Client
	Endpoints Endpoints
	Logger    Logger
}

// IntelURL returns the absolute intel URL for path.
func (s *Session) IntelURL(path string) string {
	return strings.TrimRight(s.Endpoints.Intel, "/") + "/" + strings.TrimLeft(path, "/")
}

// Log returns the session logger, or a NopLogger.
func (s *Session) Log() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}

	return s.Logger
}
