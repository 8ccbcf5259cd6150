// Package auth manages the login session against the shop backend.
//
// The client persists the bearer token and the user identity returned at
// login, checks token expiry locally from the JWT exp claim, and verifies
// the token with the server on demand. Expiry checks fail closed: any token
// that cannot be decoded counts as unauthenticated.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// Client is the authentication client. It owns the session file and performs
// the two auth endpoints (login, verify) with its own HTTP client so that the
// general API gateway can depend on it without a cycle.
type Client struct {
	baseURL string
	http    *http.Client
	store   *sessionStore
	log     zerolog.Logger
}

// NewClient creates an auth client storing its session at sessionFile.
func NewClient(baseURL, sessionFile string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		store:   &sessionStore{path: sessionFile},
		log:     logger.WithComponent("auth"),
	}
}

// loginResponse mirrors the backend's login payload.
type loginResponse struct {
	Token    string   `json:"token"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Login posts the credentials and persists the returned token and user.
// It returns ErrBadCredentials (wrapped) when the backend rejects them and
// ErrNoToken when a 2xx response carries no token.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, newAuthError("Login", err, "encoding credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, newAuthError("Login", err, "")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newAuthError("Login", err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("username", username).Msg("Login rejected")
		return nil, newAuthError("Login", ErrBadCredentials, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, newAuthError("Login", err, "decoding login response")
	}
	if lr.Token == "" {
		return nil, newAuthError("Login", ErrNoToken, "")
	}

	sess := &Session{
		Token: lr.Token,
		User: models.User{
			ID:       lr.ID,
			Username: lr.Username,
			Email:    lr.Email,
			Roles:    lr.Roles,
		},
	}

	if err := c.store.save(sess); err != nil {
		return nil, newAuthError("Login", err, "persisting session")
	}

	c.log.Info().
		Str("username", sess.User.Username).
		Str("role", sess.User.PrimaryRole()).
		Msg("Logged in")

	return sess, nil
}

// Logout clears the persisted session. It performs no network call and is
// safe to call when no session exists.
func (c *Client) Logout() {
	if err := c.store.clear(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to remove session file")
	}
}

// CurrentSession returns the persisted session, or nil when not logged in.
func (c *Client) CurrentSession() *Session {
	sess, err := c.store.load()
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to read session file")
		return nil
	}
	return sess
}

// Token returns the stored bearer token, or "" when not logged in.
func (c *Client) Token() string {
	if sess := c.CurrentSession(); sess != nil {
		return sess.Token
	}
	return ""
}

// IsAuthenticated reports whether a token is present and its exp claim lies
// in the future. The token signature is not checked here; the server remains
// the authority and malformed tokens simply count as unauthenticated.
func (c *Client) IsAuthenticated() bool {
	token := c.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// VerifyToken asks the server whether the current token is still valid.
// It returns false on any network error or non-2xx response and never
// returns an error itself.
func (c *Client) VerifyToken(ctx context.Context) bool {
	token := c.Token()
	if token == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("Token verification request failed")
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// AuthHeader returns the Authorization header map, empty when logged out.
func (c *Client) AuthHeader() map[string]string {
	token := c.Token()
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
