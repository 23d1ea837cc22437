// Package config loads gh-analyzer settings.
//
// Settings are resolved in increasing order of precedence: built-in
// defaults, the TOML config file, environment variables (including a .env
// file in the working directory), and finally command-line flags, which the
// CLI applies on top of the loaded Config.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
)

// Environment variables.
const (
	EnvToken       = "GITHUB_TOKEN"
	EnvFormat      = "GH_ANALYZER_FORMAT"
	EnvConcurrency = "GH_ANALYZER_CONCURRENCY"
	EnvAPIURL      = "GH_ANALYZER_API_URL"
	EnvConfig      = "GH_ANALYZER_CONFIG"
)

// Defaults.
const (
	DefaultFormat      = "json"
	DefaultConcurrency = 4
	DefaultAPIURL      = "https://api.github.com"
	DefaultServeAddr   = ":8080"
	DefaultProbeEvery  = 5 * time.Second
)

// Config holds all settings.
type Config struct {
	Token       string   `toml:"token"`
	Format      string   `toml:"format"`
	ExtraFiles  []string `toml:"extra_files"`
	Concurrency int      `toml:"concurrency"`
	APIURL      string   `toml:"api_url"`
	MaxRPS      float64  `toml:"max_rps"`

	Serve ServeConfig `toml:"serve"`
	Probe ProbeConfig `toml:"probe"`

	// Source is the config file that was read, or empty if none.
	Source string `toml:"-"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// ProbeConfig holds settings for the API liveness probe.
type ProbeConfig struct {
	Interval Duration `toml:"interval"`
}

// Duration is a time.Duration that decodes from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
		APIURL:      DefaultAPIURL,
		Serve:       ServeConfig{Addr: DefaultServeAddr},
		Probe:       ProbeConfig{Interval: Duration{DefaultProbeEvery}},
	}
}

// Load resolves the configuration from defaults, the config file, .env, and
// the environment.
//
// The config file is path if non-empty, else $GH_ANALYZER_CONFIG, else
// [DefaultPath]. A missing default file is ignored; a missing file that was
// named explicitly is an error.
//
// Range checks are left to [Config.Validate], which callers run once their
// own overrides such as command-line flags have been applied.
func Load(path string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := getenv(EnvConfig); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath(getenv)
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if !explicit && stderrors.Is(err, fs.ErrNotExist) {
				path = ""
			} else {
				return nil, err
			}
		}
		cfg.Source = path
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", EnvConcurrency, v)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks value ranges. Format names are checked by the output layer.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MaxRPS < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_rps must not be negative, got %g", c.MaxRPS)
	}
	if c.Probe.Interval.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "probe interval must be positive, got %s", c.Probe.Interval)
	}
	if err := errors.ValidateURL(c.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/gh-analyzer/config.toml, falling back
// to ~/.config/gh-analyzer/config.toml. It returns "" if neither location can
// be determined.
func DefaultPath(getenv func(string) string) string {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gh-analyzer", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gh-analyzer", "config.toml")
}
