// Package backend is the typed client for the remote interview-coordination
// API. It owns no view state; every call returns a typed value or a
// classified error.
package backend

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config is built once at session start and handed to New; there is no
// package-level client state.
type Config struct {
	BaseURL string // e.g. https://scheduler.example.com/api
	APIKey  string // sent as x-api-key on every request

	Timeout        time.Duration // per-request; defaults to 30s
	RequestsPerSec float64
	Burst          int
}

type Client struct {
	cfg Config
	hc  *http.Client
	lim *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		lim: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	return req, nil
}

// do rate-limits and executes one request; the response body is still open
// on success. A limiter or network failure is a TransportError.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	if err := c.lim.Wait(req.Context()); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return res, nil
}
