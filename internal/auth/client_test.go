package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "rahim",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(baseURL, filepath.Join(t.TempDir(), "session.json"), 5*time.Second)
}

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "rahim", creds["username"])

		json.NewEncoder(w).Encode(map[string]any{
			"token":    signedToken(t, time.Now().Add(time.Hour)),
			"id":       7,
			"username": "rahim",
			"email":    "rahim@example.com",
			"roles":    []string{"ADMIN", "USER"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	sess, err := c.Login(context.Background(), "rahim", "secret")
	require.NoError(t, err)
	assert.Equal(t, "rahim", sess.User.Username)
	assert.Equal(t, "ADMIN", sess.User.PrimaryRole())

	// The session survives a fresh client pointed at the same file.
	reloaded := c.CurrentSession()
	require.NotNil(t, reloaded)
	assert.Equal(t, sess.Token, reloaded.Token)
	assert.True(t, c.IsAuthenticated())
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "rahim", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
	assert.False(t, c.IsAuthenticated())
}

func TestLoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"username": "rahim"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "rahim", "secret")
	require.ErrorIs(t, err, ErrNoToken)
}

func TestIsAuthenticatedFailsClosed(t *testing.T) {
	c := newTestClient(t, "http://unused")

	// No session at all.
	assert.False(t, c.IsAuthenticated())

	save := func(token string) {
		require.NoError(t, c.store.save(&Session{Token: token}))
	}

	// Expired token.
	save(signedToken(t, time.Now().Add(-time.Minute)))
	assert.False(t, c.IsAuthenticated())

	// Not a JWT at all; must not panic or error.
	save("not-a-jwt")
	assert.False(t, c.IsAuthenticated())

	// Valid and in the future.
	save(signedToken(t, time.Now().Add(time.Hour)))
	assert.True(t, c.IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	c := newTestClient(t, "http://unused")
	require.NoError(t, c.store.save(&Session{Token: "tok"}))

	c.Logout()
	assert.Nil(t, c.CurrentSession())
	assert.Empty(t, c.AuthHeader())

	// Second logout with nothing to remove is fine.
	c.Logout()
	assert.Nil(t, c.CurrentSession())
}

func TestVerifyToken(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/verify", r.URL.Path)
		if r.Header.Get("Authorization") == "Bearer "+token {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	assert.False(t, c.VerifyToken(context.Background()), "no session yet")

	require.NoError(t, c.store.save(&Session{Token: token}))
	assert.True(t, c.VerifyToken(context.Background()))

	require.NoError(t, c.store.save(&Session{Token: "stale"}))
	assert.False(t, c.VerifyToken(context.Background()))
}

func TestAuthHeader(t *testing.T) {
	c := newTestClient(t, "http://unused")
	assert.Empty(t, c.AuthHeader())

	require.NoError(t, c.store.save(&Session{Token: "tok123"}))
	assert.Equal(t, map[string]string{"Authorization": "Bearer tok123"}, c.AuthHeader())
}

func TestCorruptSessionFileTreatedAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	c := NewClient("http://unused", path, time.Second)
	assert.Nil(t, c.CurrentSession())
	assert.False(t, c.IsAuthenticated())
}
