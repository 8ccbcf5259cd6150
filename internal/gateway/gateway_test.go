package gateway

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
	"steeldesk/internal/auth"
)

// writeSession seeds a session file the way the auth client persists it.
func writeSession(t *testing.T, path string, exp time.Time) {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	data, err := json.Marshal(map[string]any{
		"token": signed,
		"user":  map[string]any{"username": "rahim"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func newTestGateway(t *testing.T, handler http.Handler) (*Client, *auth.Client, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	writeSession(t, sessionFile, time.Now().Add(time.Hour))

	authClient := auth.NewClient(srv.URL, sessionFile, 5*time.Second)
	return NewClient(srv.URL, authClient, 5*time.Second), authClient, sessionFile
}

func TestCallSendsAuthAndJSONHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))

	var out map[string]string
	err := gw.Post(context.Background(), "/api/customers", map[string]string{"name": "x"}, &out)
	require.NoError(t, err)

	assert.Contains(t, gotAuth, "Bearer ")
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "yes", out["ok"])
}

func TestUnauthorizedLogsOutExactlyOnce(t *testing.T) {
	gw, authClient, sessionFile := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	require.True(t, authClient.IsAuthenticated())

	err := gw.Get(context.Background(), "/api/customers", nil)
	require.ErrorIs(t, err, auth.ErrSessionExpired)

	// The session file is gone and every later check reports logged out.
	_, statErr := os.Stat(sessionFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, authClient.IsAuthenticated())
}

func TestNon2xxReturnsHTTPError(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("stock is insufficient"))
	}))

	err := gw.Get(context.Background(), "/api/products/1", nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "stock is insufficient", httpErr.Body)
}

func TestNon2xxWithUnreadableBodyStillErrors(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := gw.Get(context.Background(), "/api/products", nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Empty(t, httpErr.Body)
}

func TestMalformedJSONReturnsParseError(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	var out map[string]any
	err := gw.Get(context.Background(), "/api/customers", &out)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "/api/customers", parseErr.Endpoint)
}

func TestDeleteIgnoresBody(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, gw.Delete(context.Background(), "/api/customers/3"))
}
