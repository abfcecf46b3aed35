package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "http://localhost:8080", cfg.ShortURLBase)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tinylinks_auth", cfg.AuthCookieName)
	assert.NotEmpty(t, cfg.AuthSecretKey)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7000")
	t.Setenv("BASE_URL", "http://envonly.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_COOKIE_NAME", "session")
	t.Setenv("AUTH_SECRET_KEY", "from-env")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.RunAddr)
	assert.Equal(t, "http://envonly.com", cfg.ShortURLBase)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "session", cfg.AuthCookieName)
	assert.Equal(t, "from-env", cfg.AuthSecretKey)
}

func TestInvalidLogLevelIsRejected(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestInvalidRunAddrIsRejected(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "not-an-address")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}
