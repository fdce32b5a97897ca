package plansfeatures

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"clinical-sharing/internal/ports/capabilities"
)

const DefaultCacheTTL = 30 * time.Second

// Resolver implementa capabilities.Resolver sobre plans-features.
// Con allowAll (modo dev) todo devuelve true sin llamar a upstream.
type Resolver struct {
	client   *Client
	allowAll bool
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cachedCaps
}

type cachedCaps struct {
	caps    map[string]bool
	fetched time.Time
}

var _ capabilities.Resolver = (*Resolver)(nil)

func NewResolver(client *Client, allowAll bool, ttl time.Duration) *Resolver {
	return &Resolver{
		client:   client,
		allowAll: allowAll,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cachedCaps),
	}
}

func (r *Resolver) Has(ctx context.Context, userID string, capability string) (bool, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false, errors.New("capability required")
	}
	caps, err := r.Resolve(ctx, userID)
	if err != nil {
		return false, err
	}
	return caps["*"] || caps[capability], nil
}

// Resolve devuelve el mapa completo de capabilities para userID.
// ttl <= 0 desactiva el cache.
func (r *Resolver) Resolve(ctx context.Context, userID string) (map[string]bool, error) {
	if r.allowAll {
		return map[string]bool{"*": true}, nil
	}
	if r.client == nil || !r.client.IsConfigured() {
		return nil, ErrPlansNotConfigured
	}

	userID = strings.TrimSpace(userID)
	now := r.now()
	if r.ttl > 0 {
		r.mu.Lock()
		c, ok := r.cache[userID]
		r.mu.Unlock()
		if ok && now.Sub(c.fetched) < r.ttl {
			return c.caps, nil
		}
	}

	resp, err := r.client.GetCapabilities(ctx, userID)
	if err != nil {
		return nil, err
	}

	if r.ttl > 0 {
		r.mu.Lock()
		r.cache[userID] = cachedCaps{caps: resp.Capabilities, fetched: now}
		r.mu.Unlock()
	}
	return resp.Capabilities, nil
}
