// Package fetch implements the HTTP transport used to query content sources.
//
// Every attempt is a single GET of {BaseURL}{endpoint}?search={term}. The
// request is bound to the caller's context so superseded searches can be
// abandoned mid-flight.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client performs one search request against one source endpoint and
// returns the raw response body.
type Client interface {
	Search(ctx context.Context, endpoint, term string) ([]byte, error)
}

// Config configures the HTTP client.
type Config struct {
	BaseURL   string        // Scheme and host, optionally with a path prefix. Required.
	Timeout   time.Duration // Per-request timeout. Default: 10s.
	MaxBytes  int64         // Max response body size. Default: 4MB.
	UserAgent string
	// Header is added to every request (auth tokens, Accept-Language).
	Header http.Header
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 4 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = "omnisearch/1.0"
	}
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	client *http.Client
	base   string
	config Config
}

var _ Client = (*HTTPClient)(nil)

// New creates an HTTPClient. The base URL must be absolute.
func New(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, cfg.BaseURL)
	}
	cfg.defaults()

	return &HTTPClient{
		client: &http.Client{Timeout: cfg.Timeout},
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		config: cfg,
	}, nil
}

// URL returns the request URL for one search attempt.
func (c *HTTPClient) URL(endpoint, term string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.base + endpoint + "?" + url.Values{"search": {term}}.Encode()
}

// Search issues GET {endpoint}?search={term}. Non-2xx responses and bodies
// larger than MaxBytes are errors.
func (c *HTTPClient) Search(ctx context.Context, endpoint, term string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint, term), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, vs := range c.config.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.config.MaxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, c.config.MaxBytes)
	}
	return body, nil
}
