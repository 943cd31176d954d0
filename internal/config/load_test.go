package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BRAINFLIP_DATABASE_URL", "postgres://localhost:5432/brainflip_test")
	t.Setenv("BRAINFLIP_SHARE_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("BRAINFLIP_SERVER_PORT", "9090")
	t.Setenv("BRAINFLIP_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/brainflip_test", cfg.Database.URL)
	// Unset values fall back to defaults.
	assert.Equal(t, 60, cfg.Ingestion.TimeoutSeconds)
	assert.Equal(t, int64(20<<20), cfg.Ingestion.MaxUploadBytes)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Missing database URL",
			env: map[string]string{
				"BRAINFLIP_SHARE_TOKEN_SECRET": "0123456789abcdef0123456789abcdef",
			},
		},
		{
			name: "Share token secret too short",
			env: map[string]string{
				"BRAINFLIP_DATABASE_URL":       "postgres://localhost:5432/x",
				"BRAINFLIP_SHARE_TOKEN_SECRET": "short",
			},
		},
		{
			name: "Invalid log level",
			env: map[string]string{
				"BRAINFLIP_DATABASE_URL":       "postgres://localhost:5432/x",
				"BRAINFLIP_SHARE_TOKEN_SECRET": "0123456789abcdef0123456789abcdef",
				"BRAINFLIP_SERVER_LOG_LEVEL":   "loud",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
