package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinical-sharing/internal/platform/httpclient"
	"clinical-sharing/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
	ErrTokenEmpty        = errors.New("token is empty")
)

var _ auth.Verifier = (*Client)(nil)

const (
	verifyPath = "/v1/tokens/verify"
	usersPath  = "/v1/users"
)

// Config del cliente Odin (IAM).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration

	// Solo tests.
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
		return nil, fmt.Errorf("odin: %w", err)
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured() && c.apiKey != ""
}

type userPayload struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

type verifyPayload struct {
	userPayload
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Verify implementa auth.Verifier contra el endpoint de tokens de Odin.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out verifyPayload
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    verifyPath,
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    map[string]string{"token": token},
		Out:     &out,
	})
	if err != nil {
		return auth.Claims{}, c.mapError(err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrOdinUpstream)
	}
	claims := auth.Claims{
		UserID:   out.UserID,
		Email:    strings.ToLower(strings.TrimSpace(out.Email)),
		TenantID: strings.TrimSpace(out.TenantID),
	}
	if out.ExpiresAt != nil {
		claims.ExpiresAt = out.ExpiresAt.UTC()
	}
	return claims, nil
}

// LookupByEmail devuelve el user_id registrado para email.
func (c *Client) LookupByEmail(ctx context.Context, email string) (string, error) {
	var out userPayload
	err := c.http.Do(ctx, httpclient.Request{
		Path:  usersPath,
		Query: url.Values{"email": {email}},
		Out:   &out,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.UserID), nil
}

// GetUser devuelve el usuario por id.
func (c *Client) GetUser(ctx context.Context, userID string) (string, error) {
	var out userPayload
	err := c.http.Do(ctx, httpclient.Request{
		Path: usersPath + "/" + url.PathEscape(userID),
		Out:  &out,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.UserID), nil
}

func (c *Client) mapError(err error) error {
	switch {
	case httpclient.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden):
		return ErrOdinUnauthorized
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrOdinUpstream, err)
	}
}
