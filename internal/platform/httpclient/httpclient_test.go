package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/things", r.URL.Path)
		assert.Equal(t, "x@y.com", r.URL.Query().Get("email"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "v", in["k"])

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u-1"})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", WithHeader("X-Api-Key", "secret"))
	require.NoError(t, err)

	var out struct {
		ID string `json:"id"`
	}
	err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "v1/things",
		Query:  url.Values{"email": {"x@y.com"}},
		Body:   map[string]string{"k": "v"},
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.ID)
}

func TestDo_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Path: "/missing"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusUnauthorized))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "nope", he.Body)
}

func TestDo_NotConfigured(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.False(t, c.Configured())
	assert.ErrorIs(t, c.Do(context.Background(), Request{Path: "/x"}), ErrNotConfigured)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}
