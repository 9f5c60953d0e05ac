package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/storeprofile/cmd/storeprofile"
	sphttp "github.com/fwojciec/storeprofile/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storeprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		cfg, err := main.LoadConfig(writeConfig(t, ""))

		require.NoError(t, err)
		assert.Equal(t, sphttp.DefaultFetchTimeout, cfg.Timeout)
		assert.Equal(t, sphttp.DefaultUserAgent, cfg.UserAgent)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "development", cfg.Server.Environment)
		assert.Zero(t, cfg.DomainRPS)
		assert.NotEmpty(t, cfg.DB)
	})

	t.Run("reads the config file", func(t *testing.T) {
		path := writeConfig(t, `
timeout: 3s
domain_rps: 2
server:
  addr: ":9000"
  allowed_origins:
    - "chrome-extension://*"
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.InDelta(t, 2.0, cfg.DomainRPS, 1e-9)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, []string{"chrome-extension://*"}, cfg.Server.AllowedOrigins)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("STOREPROFILE_TIMEOUT", "12s")
		t.Setenv("STOREPROFILE_SERVER_ADDR", ":7000")
		t.Setenv("STOREPROFILE_DB", "/tmp/profiles.db")

		cfg, err := main.LoadConfig(writeConfig(t, "timeout: 3s\n"))

		require.NoError(t, err)
		assert.Equal(t, 12*time.Second, cfg.Timeout)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, "/tmp/profiles.db", cfg.DB)
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		_, err := main.LoadConfig(writeConfig(t, "timeout: 0s\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout must be positive")
	})

	t.Run("fails for a missing explicit file", func(t *testing.T) {
		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}
