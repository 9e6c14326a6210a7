package request_test

import (
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_OK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   int
		expected bool
	}{
		{status: 100, expected: true},
		{status: 200, expected: true},
		{status: 204, expected: true},
		{status: 302, expected: true},
		{status: 399, expected: true},
		{status: 400, expected: false},
		{status: 401, expected: false},
		{status: 500, expected: false},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			t.Parallel()

			resp := request.NewResponse(http.MethodGet, "https://api.example.com", tt.status, nil, nil)
			assert.Equal(t, tt.expected, resp.OK())
		})
	}
}

func TestResponse_Reason(t *testing.T) {
	t.Parallel()

	resp := request.NewResponse(http.MethodGet, "https://api.example.com", http.StatusTeapot, nil, nil)
	assert.Equal(t, "I'm a teapot", resp.Reason())

	resp.Status = "418 Short and stout"
	assert.Equal(t, "Short and stout", resp.Reason())
}

func TestResponse_JSON(t *testing.T) {
	t.Parallel()

	t.Run("parses once", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com", http.StatusOK, nil, []byte(`{"ok":true}`))

		first, err := resp.JSON()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, first)

		resp.Body = []byte("changed")

		second, err := resp.JSON()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com", http.StatusOK, nil, []byte("<html>"))

		value, err := resp.JSON()
		require.Error(t, err)
		assert.Nil(t, value)

		var decodeErr *request.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, []byte("<html>"), decodeErr.Body)
	})

	t.Run("decode into struct", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com", http.StatusOK, nil, []byte(`{"name":"whoami"}`))

		var payload struct {
			Name string `json:"name"`
		}

		require.NoError(t, resp.Decode(&payload))
		assert.Equal(t, "whoami", payload.Name)

		var decodeErr *request.DecodeError
		require.ErrorAs(t, resp.Decode(&[]int{}), &decodeErr)
	})
}

func TestResponse_RaiseForStatus(t *testing.T) {
	t.Parallel()

	t.Run("ok response", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com/x", http.StatusOK, nil, []byte(`{}`))
		assert.NoError(t, resp.RaiseForStatus())
	})

	t.Run("JSON body is embedded pretty-printed", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com/x", http.StatusBadRequest, nil, []byte(`{"error":"bad"}`))

		err := resp.RaiseForStatus()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"error": "bad"`)
		assert.Contains(t, err.Error(), "400 Bad Request: GET https://api.example.com/x")

		var httpErr *request.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
		assert.Equal(t, "{\n  \"error\": \"bad\"\n}", httpErr.Detail)
		assert.False(t, httpErr.Unauthorized())
	})

	t.Run("non-JSON body leaves the message unchanged", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com/x", http.StatusBadRequest, nil, []byte("bad request"))

		err := resp.RaiseForStatus()
		require.Error(t, err)
		assert.Equal(t, "400 Bad Request: GET https://api.example.com/x", err.Error())
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		resp := request.NewResponse(http.MethodGet, "https://api.example.com/x", http.StatusUnauthorized, nil, nil)

		var httpErr *request.HTTPError
		require.True(t, errors.As(resp.RaiseForStatus(), &httpErr))
		assert.True(t, httpErr.Unauthorized())
	})
}
