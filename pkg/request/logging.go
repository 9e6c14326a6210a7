package request

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Logger is the structured logger used by the pipeline.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// Log messages written by Logging.
const (
	LogMessageResponse      = "HTTP Response"
	LogMessageRequestFailed = "HTTP Request Failed"
)

// Logging writes one line per call. It observes only: the response and error
// from the inner transport are returned unchanged.
type Logging struct {
	next   Transport
	logger Logger
}

// NewLogging wraps next. A nil logger discards everything.
func NewLogging(next Transport, logger Logger) *Logging {
	if logger == nil {
		logger = nopLogger{}
	}

	return &Logging{next: next, logger: logger}
}

// Do implements Transport.
func (l *Logging) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := l.next.Do(ctx, req)

	if resp == nil {
		if err != nil {
			l.logger.Error(LogMessageRequestFailed, map[string]interface{}{
				"request_id": requestID,
				"method":     req.Method,
				"url":        req.URL,
				"error":      err.Error(),
			})
		}

		return resp, err
	}

	target := resp.URL
	if target == "" {
		target = req.URL
	}

	fields := map[string]interface{}{
		"request_id":  requestID,
		"method":      req.Method,
		"url":         target,
		"status_code": resp.StatusCode,
		"reason":      resp.Reason(),
		"duration":    time.Since(start).String(),
	}

	if resp.OK() {
		l.logger.Info(LogMessageResponse, fields)
	} else {
		l.logger.Error(LogMessageResponse, fields)
	}

	return resp, err
}
