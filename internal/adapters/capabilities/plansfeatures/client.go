package plansfeatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinical-sharing/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plans-features client not configured")
	ErrPlansUnauthorized  = errors.New("plans-features unauthorized")
	ErrPlansUpstream      = errors.New("plans-features upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration

	Transport http.RoundTripper
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	hc, err := httpclient.New(cfg.BaseURL,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithTransport(cfg.Transport),
		httpclient.WithHeader(h, apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("plans-features: %w", err)
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured() && c.apiKey != ""
}

// CapabilitiesResponse: {"capabilities": {"records:share": true}}
type CapabilitiesResponse struct {
	Capabilities map[string]bool `json:"capabilities"`
}

// GetCapabilities trae las capabilities del plan del usuario.
func (c *Client) GetCapabilities(ctx context.Context, userID string) (CapabilitiesResponse, error) {
	if !c.IsConfigured() {
		return CapabilitiesResponse{}, ErrPlansNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CapabilitiesResponse{}, errors.New("userID required")
	}

	var out CapabilitiesResponse
	err := c.http.Do(ctx, httpclient.Request{
		Path:  "/v1/capabilities",
		Query: url.Values{"user_id": {userID}},
		Out:   &out,
	})
	switch {
	case err == nil:
	case httpclient.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden):
		return CapabilitiesResponse{}, ErrPlansUnauthorized
	default:
		return CapabilitiesResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}

	if out.Capabilities == nil {
		out.Capabilities = map[string]bool{}
	}
	return out, nil
}
