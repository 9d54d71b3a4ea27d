package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1, cfg.GetTokenExpiration())
	assert.Equal(t, "identity-server", cfg.GetIssuer())
	assert.Equal(t, []string{"api"}, cfg.GetAudience())
	assert.Equal(t, 12, cfg.GetHashCost())
	assert.Empty(t, cfg.GetSigningKey())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("IDENTITY_TOKEN_EXPIRATION_HOURS", "24")
	t.Setenv("IDENTITY_AUDIENCE", "api, portal")
	t.Setenv("IDENTITY_SIGNING_KEY", "from-env")

	cfg := LoadConfig()

	assert.Equal(t, 24, cfg.GetTokenExpiration())
	assert.Equal(t, []string{"api", "portal"}, cfg.GetAudience())
	assert.Equal(t, "from-env", cfg.GetSigningKey())
}
