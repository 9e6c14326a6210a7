package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Response is the uniform result of one HTTP round trip. It is created by the
// transport and passed unchanged through the middleware chain.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Method     string
	URL        string

	parseOnce sync.Once
	parsed    any
	parseErr  error
}

// NewResponse builds a Response. Transports and test doubles use it.
func NewResponse(method, rawURL string, statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}

	return &Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     header,
		Body:       body,
		Method:     method,
		URL:        rawURL,
	}
}

// OK reports whether the status code is in [100, 400).
func (r *Response) OK() bool {
	return r.StatusCode >= 100 && r.StatusCode < 400
}

// Reason returns the status reason phrase.
func (r *Response) Reason() string {
	if r.Status != "" {
		prefix := strconv.Itoa(r.StatusCode) + " "
		if reason := strings.TrimPrefix(r.Status, prefix); reason != r.Status && reason != "" {
			return reason
		}
	}

	return http.StatusText(r.StatusCode)
}

// JSON returns the body parsed as generic JSON. The body is parsed at most once.
func (r *Response) JSON() (any, error) {
	r.parseOnce.Do(func() {
		var value any

		err := json.Unmarshal(r.Body, &value)
		if err != nil {
			r.parseErr = &DecodeError{Body: r.Body, Err: err}

			return
		}

		r.parsed = value
	})

	return r.parsed, r.parseErr
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return &DecodeError{Body: r.Body, Err: err}
	}

	return nil
}

// RaiseForStatus returns an *HTTPError when the status code is not OK. When
// the body is JSON, the error message embeds it indented.
func (r *Response) RaiseForStatus() error {
	if r.OK() {
		return nil
	}

	return &HTTPError{
		Method:     r.Method,
		URL:        r.URL,
		StatusCode: r.StatusCode,
		Reason:     r.Reason(),
		Body:       r.Body,
		Detail:     indentJSON(r.Body),
	}
}

// indentJSON returns body indented, or "" when body is not JSON.
func indentJSON(body []byte) string {
	if !json.Valid(body) {
		return ""
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, bytes.TrimSpace(body), "", "  ")
	if err != nil {
		return ""
	}

	return buf.String()
}
