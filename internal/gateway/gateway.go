// Package gateway is the authenticated JSON-over-HTTP helper every feature
// service goes through.
//
// Error contract, uniform across all endpoints:
//   - 401: the session is invalidated (auth.Logout, exactly once per call)
//     and auth.ErrSessionExpired is returned.
//   - other non-2xx: *HTTPError with status and best-effort body text.
//   - undecodable 2xx body: *ParseError.
//
// There is no retry, timeout beyond the http.Client's, or backpressure:
// every call is fire-once, and callers guard against duplicate submits.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"steeldesk/internal/auth"
	"steeldesk/internal/logger"
)

// Client performs authenticated requests against the backend.
type Client struct {
	baseURL string
	http    *http.Client
	auth    *auth.Client
	log     zerolog.Logger
}

// NewClient creates a gateway bound to the given auth client.
func NewClient(baseURL string, authClient *auth.Client, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		auth:    authClient,
		log:     logger.WithComponent("gateway"),
	}
}

// Call performs one request. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded 2xx response body.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	requestID := uuid.NewString()
	log := logger.WithRequestID(requestID)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ParseError{Endpoint: endpoint, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}

	// Default JSON headers, then the auth header.
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.auth.AuthHeader() {
		req.Header.Set(k, v)
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("endpoint", endpoint).Msg("Request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Session-invalid is systemic: drop the session so every later
		// IsAuthenticated() reports false and the caller re-logs-in.
		log.Warn().Str("endpoint", endpoint).Msg("Received 401, clearing session")
		c.auth.Logout()
		return auth.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		log.Debug().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("Non-2xx response")
		return &HTTPError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(text))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Call(ctx, http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Call(ctx, http.MethodPost, endpoint, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Call(ctx, http.MethodPut, endpoint, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.Call(ctx, http.MethodDelete, endpoint, nil, nil)
}
