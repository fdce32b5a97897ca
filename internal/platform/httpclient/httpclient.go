package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Client envuelve *http.Client para los adapters de servicios externos
// (IAM, plans-features). Todas las llamadas son JSON.
type Client struct {
	http    *http.Client
	baseURL string
	headers http.Header
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTransport permite inyectar un RoundTripper (tests).
func WithTransport(tr http.RoundTripper) Option {
	return func(c *Client) {
		if tr != nil {
			c.http.Transport = tr
		}
	}
}

// WithHeader agrega un header que va en todos los requests (p.ej. API key).
func WithHeader(key, value string) Option {
	return func(c *Client) {
		key = strings.TrimSpace(key)
		if key != "" && value != "" {
			c.headers.Set(key, value)
		}
	}
}

// New crea un Client contra baseURL. baseURL vacío es válido: el client queda
// sin configurar y cada llamada devuelve ErrNotConfigured.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: make(http.Header),
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
		}
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var ErrNotConfigured = errors.New("httpclient: base url not configured")

func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// IsStatus indica si err es un HTTPError con alguno de los códigos dados.
func IsStatus(err error, codes ...int) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	for _, c := range codes {
		if he.StatusCode == c {
			return true
		}
	}
	return false
}

// Request describe una llamada JSON. Body y Out son opcionales.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
	Out     any
}

// Do ejecuta el request. Devuelve *HTTPError si el status no es 2xx.
func (c *Client) Do(ctx context.Context, r Request) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	full := c.baseURL + "/" + strings.TrimLeft(strings.TrimSpace(r.Path), "/")
	if len(r.Query) > 0 {
		full += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	for k, v := range r.Headers {
		if strings.TrimSpace(k) != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if r.Out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, r.Out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}
