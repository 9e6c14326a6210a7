package request

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"
)

// Content types used by the pipeline.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BasicAuth holds HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Request describes one outgoing call. Middleware treats it as immutable and
// derives modified copies instead of writing to it.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values
	// Body is JSON-encoded unless it is a []byte or string, which are sent as is.
	Body any
	// Form is sent form-encoded and takes precedence over Body.
	Form      url.Values
	BasicAuth *BasicAuth
	// Timeout bounds the whole call. Zero means no per-request timeout.
	Timeout time.Duration
}

// Clone returns a deep copy of the request's headers, query and form values.
// Body is shared.
func (r *Request) Clone() *Request {
	clone := *r

	if r.Headers != nil {
		clone.Headers = maps.Clone(r.Headers)
	}

	if r.Query != nil {
		clone.Query = cloneValues(r.Query)
	}

	if r.Form != nil {
		clone.Form = cloneValues(r.Form)
	}

	if r.BasicAuth != nil {
		basic := *r.BasicAuth
		clone.BasicAuth = &basic
	}

	return &clone
}

// WithHeader returns a copy of the request with the header set. An existing
// header with the same name in a different case is replaced.
func (r *Request) WithHeader(key, value string) *Request {
	clone := r.Clone()
	if clone.Headers == nil {
		clone.Headers = make(map[string]string, 1)
	}

	for existing := range clone.Headers {
		if strings.EqualFold(existing, key) {
			delete(clone.Headers, existing)
		}
	}

	clone.Headers[key] = value

	return clone
}

// WithURL returns a copy of the request targeting rawURL.
func (r *Request) WithURL(rawURL string) *Request {
	clone := r.Clone()
	clone.URL = rawURL

	return clone
}

// WithTimeout returns a copy of the request with the timeout set.
func (r *Request) WithTimeout(timeout time.Duration) *Request {
	clone := r.Clone()
	clone.Timeout = timeout

	return clone
}

// Header returns the value of the named header, matched case-insensitively.
func (r *Request) Header(key string) string {
	for name, value := range r.Headers {
		if strings.EqualFold(name, key) {
			return value
		}
	}

	return ""
}

// targetURL returns the request URL with Query merged into it.
func (r *Request) targetURL() (string, error) {
	if len(r.Query) == 0 {
		return r.URL, nil
	}

	parsed, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	query := parsed.Query()
	for key, values := range r.Query {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// encodeBody returns the wire body and the content type it implies.
func (r *Request) encodeBody() ([]byte, string, error) {
	if r.Form != nil {
		return []byte(r.Form.Encode()), ContentTypeForm, nil
	}

	switch body := r.Body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return body, "", nil
	case string:
		return []byte(body), "", nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding JSON body: %w", err)
		}

		return data, ContentTypeJSON, nil
	}
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, list := range values {
		clone[key] = append([]string(nil), list...)
	}

	return clone
}

// Option customises a request built by the Client verb helpers.
type Option func(*Request)

// WithQuery adds every value in query to the request query string.
func WithQuery(query url.Values) Option {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(url.Values, len(query))
		}

		for key, values := range query {
			r.Query[key] = append(r.Query[key], values...)
		}
	}
}

// WithQueryParam adds values for a single query parameter.
func WithQueryParam(key string, values ...string) Option {
	return WithQuery(url.Values{key: values})
}

// WithHeaders sets request headers.
func WithHeaders(headers map[string]string) Option {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}

		maps.Copy(r.Headers, headers)
	}
}

// WithJSON sets a body that is JSON-encoded on the wire.
func WithJSON(body any) Option {
	return func(r *Request) {
		r.Body = body
	}
}

// WithForm sets a form-encoded body.
func WithForm(form url.Values) Option {
	return func(r *Request) {
		r.Form = cloneValues(form)
	}
}

// WithBasicAuth sets HTTP Basic credentials.
func WithBasicAuth(username, password string) Option {
	return func(r *Request) {
		r.BasicAuth = &BasicAuth{Username: username, Password: password}
	}
}

// WithRequestTimeout sets an explicit timeout that overrides any default.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(r *Request) {
		r.Timeout = timeout
	}
}
