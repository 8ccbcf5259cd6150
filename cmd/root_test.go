package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"steeldesk/internal/config"
)

func TestEnsureConfigKeepsLoadedConfig(t *testing.T) {
	provided := &config.Config{APIBaseURL: "http://backend:9090"}
	got, err := ensureConfig(provided)
	require.NoError(t, err)
	assert.Same(t, provided, got)
}

func TestEnsureConfigFailsOnBadEnvironment(t *testing.T) {
	// A negative timeout fails validation on load and on any retry; commands
	// must never run against a nil configuration.
	t.Setenv("STEELDESK_HTTP_TIMEOUT", "-5s")

	got, err := ensureConfig(nil)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestEnsureConfigReloadsWhenMissing(t *testing.T) {
	t.Setenv("STEELDESK_API_URL", "http://backend:9090")
	t.Setenv("STEELDESK_HTTP_TIMEOUT", "10s")

	got, err := ensureConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9090", got.APIBaseURL)
	assert.Equal(t, 10*time.Second, got.HTTPTimeout)
}
