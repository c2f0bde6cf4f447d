// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	// godotenv never overrides a variable that is set, even to "".
	for _, key := range []string{EnvAPIURL, EnvTimeout, EnvSessionDir} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout())
	assert.Equal(t, DefaultWordWrap, cfg.WordWrap)
	assert.Equal(t, filepath.Join(dir, "state", "storefront"), cfg.StateDir())

	category, err := cfg.Category()
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAll, category)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "config", "storefront", "config.toml"), `
api_url = "https://file.example.com"
timeout = "5s"
default_category = "jewelry"
default_sort = "price-asc"
word_wrap = 100
`)
	envFile := filepath.Join(dir, "test.env")
	writeFile(t, envFile, "STOREFRONT_TIMEOUT=12\nSTOREFRONT_SESSION_DIR=/tmp/storefront-session\n")

	t.Setenv(EnvAPIURL, "http://env.example.com:8089")

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://env.example.com:8089", cfg.APIURL, "environment beats the file")
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout(), ".env fills unset variables")
	assert.Equal(t, "/tmp/storefront-session", cfg.StateDir())
	assert.Equal(t, 100, cfg.WordWrap)

	sort, err := cfg.Sort()
	require.NoError(t, err)
	assert.Equal(t, domain.SortPriceAscending, sort)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml"), EnvFile: filepath.Join(dir, "none.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, `timeout = "forever"`)

	_, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "none.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadBadTimeoutEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvTimeout, "soon")

	_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "none.env")})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty url", mutate: func(c *Config) { c.APIURL = "" }, errContains: "api_url"},
		{name: "relative url", mutate: func(c *Config) { c.APIURL = "fakestoreapi.com" }, errContains: "api_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, errContains: "timeout"},
		{name: "narrow wrap", mutate: func(c *Config) { c.WordWrap = 5 }, errContains: "word_wrap"},
		{name: "unknown category", mutate: func(c *Config) { c.DefaultCategory = "toys" }, errContains: "default_category"},
		{name: "unknown sort", mutate: func(c *Config) { c.DefaultSort = "newest" }, errContains: "default_sort"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.errContains == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	data, err := Default().Encode()
	require.NoError(t, err)

	assert.Contains(t, string(data), "timeout = '30s'")
	assert.Contains(t, string(data), "api_url = 'https://fakestoreapi.com'")
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	got, err := parseTimeout("45")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, got)

	got, err = parseTimeout("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, got)

	_, err = parseTimeout("later")
	assert.Error(t, err)
}
