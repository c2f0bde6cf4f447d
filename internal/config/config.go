// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads storefront settings from config.toml, a .env file and
// STOREFRONT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by Load.
const (
	EnvAPIURL     = "STOREFRONT_API_URL"
	EnvTimeout    = "STOREFRONT_TIMEOUT"
	EnvSessionDir = "STOREFRONT_SESSION_DIR"
)

// Defaults.
const (
	DefaultAPIURL   = "https://fakestoreapi.com"
	DefaultTimeout  = 30 * time.Second
	DefaultWordWrap = 80
	DefaultEnvFile  = ".env"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	*d = Duration(parsed)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the effective settings.
type Config struct {
	APIURL          string   `toml:"api_url"          validate:"required,url"`
	Timeout         Duration `toml:"timeout"          validate:"gt=0"`
	SessionDir      string   `toml:"session_dir"`
	DefaultCategory string   `toml:"default_category"`
	DefaultSort     string   `toml:"default_sort"`
	WordWrap        int      `toml:"word_wrap"        validate:"gte=20,lte=400"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		APIURL:          DefaultAPIURL,
		Timeout:         Duration(DefaultTimeout),
		DefaultCategory: domain.CategoryAll.ID(),
		DefaultSort:     domain.SortDefault.ID(),
		WordWrap:        DefaultWordWrap,
	}
}

// LoadOptions locates the config sources.
type LoadOptions struct {
	// ConfigFile is read if set; a missing explicit file is an error.
	// Empty selects DefaultConfigFile, which may be absent.
	ConfigFile string
	// EnvFile is loaded into the process environment without overriding
	// variables that are already set. Empty selects DefaultEnvFile.
	EnvFile string
}

// Load builds the configuration. The result is not validated; callers apply
// flag overrides first and then call Validate.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.ConfigFile
	explicit := path != ""

	if !explicit {
		path = DefaultConfigFile()
	}

	if err := cfg.readFile(ExpandPath(path), explicit); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flags or XDG dirs
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvAPIURL); ok && value != "" {
		c.APIURL = value
	}

	if value, ok := lookup(EnvTimeout); ok && value != "" {
		timeout, err := parseTimeout(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvTimeout, err)
		}

		c.Timeout = Duration(timeout)
	}

	if value, ok := lookup(EnvSessionDir); ok && value != "" {
		c.SessionDir = value
	}

	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", value)
	}

	return timeout, nil
}

// Validate checks field constraints and the category and sort names.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]

			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, tomlName(first.Field()), first.Tag(), first.Value())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := c.Category(); err != nil {
		return fmt.Errorf("%w: default_category: %w", ErrInvalidConfig, err)
	}

	if _, err := c.Sort(); err != nil {
		return fmt.Errorf("%w: default_sort: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Category parses DefaultCategory.
func (c *Config) Category() (domain.Category, error) {
	return domain.ParseCategory(c.DefaultCategory)
}

// Sort parses DefaultSort.
func (c *Config) Sort() (domain.SortOption, error) {
	return domain.ParseSortOption(c.DefaultSort)
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout)
}

// StateDir resolves the session directory.
func (c *Config) StateDir() string {
	if c.SessionDir == "" {
		return DefaultStateDir()
	}

	return filepath.Clean(ExpandPath(c.SessionDir))
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return data, nil
}

var fieldNames = map[string]string{ //nolint:gochecknoglobals
	"APIURL":          "api_url",
	"Timeout":         "timeout",
	"SessionDir":      "session_dir",
	"DefaultCategory": "default_category",
	"DefaultSort":     "default_sort",
	"WordWrap":        "word_wrap",
}

func tomlName(field string) string {
	if name, ok := fieldNames[field]; ok {
		return name
	}

	return strings.ToLower(field)
}
