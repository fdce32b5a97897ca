package plansfeatures

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"clinical-sharing/internal/ports/capabilities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_AllowAll(t *testing.T) {
	r := NewResolver(nil, true, 0)
	ok, err := r.Has(context.Background(), "user-a", capabilities.ShareRecords)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolver_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	_, err = NewResolver(c, false, 0).Has(context.Background(), "user-a", capabilities.ShareRecords)
	assert.ErrorIs(t, err, ErrPlansNotConfigured)
}

func TestResolver_UpstreamAndCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/capabilities", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		caps := map[string]bool{}
		if r.URL.Query().Get("user_id") == "user-pro" {
			caps[capabilities.ShareRecords] = true
		}
		_ = json.NewEncoder(w).Encode(CapabilitiesResponse{Capabilities: caps})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	r := NewResolver(c, false, time.Minute)
	ctx := context.Background()

	ok, err := r.Has(ctx, "user-pro", capabilities.ShareRecords)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Has(ctx, "user-pro", capabilities.ShareRecords)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1), calls.Load())

	ok, err = r.Has(ctx, "user-free", capabilities.ShareRecords)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	_, err = NewResolver(c, false, 0).Has(context.Background(), "u", capabilities.ShareRecords)
	assert.ErrorIs(t, err, ErrPlansUnauthorized)
}
