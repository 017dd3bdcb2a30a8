// Package config loads ls-across settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/logging"
)

// Config holds client settings. Flags override the environment, which
// overrides the file.
type Config struct {
	BaseURL      string   `yaml:"base_url"`
	Timeout      Duration `yaml:"timeout"`
	Mission      string   `yaml:"mission"`
	Username     string   `yaml:"username"`
	APIKey       string   `yaml:"api_key"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	LogLevel     string   `yaml:"log_level"`
	LocalZone    string   `yaml:"local_zone"`

	// ResolveCacheSize overrides across.DefaultResolveCacheSize when set.
	ResolveCacheSize int `yaml:"resolve_cache_size"`
}

// Duration reads "90s", "1m30s", "2d" or a bare number of seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	v, err := ParseDuration(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ParseDuration parses a duration string or a number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// Env variables read by ApplyEnv.
const (
	EnvBaseURL      = "ACROSS_BASE_URL"
	EnvUsername     = "ACROSS_USERNAME"
	EnvAPIKey       = "ACROSS_API_KEY"
	EnvClientID     = "ACROSS_CLIENT_ID"
	EnvClientSecret = "ACROSS_CLIENT_SECRET"
	EnvLogLevel     = "ACROSS_LOG_LEVEL"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:  across.DefaultBaseURL,
		Timeout:  Duration(across.DefaultTimeout),
		Mission:  string(across.Swift),
		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ls-across/config.yaml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ls-across", "config.yaml")
}

// Load reads path over the defaults and applies the environment. An empty
// path means DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for env, field := range map[string]*string{
		EnvBaseURL:      &c.BaseURL,
		EnvUsername:     &c.Username,
		EnvAPIKey:       &c.APIKey,
		EnvClientID:     &c.ClientID,
		EnvClientSecret: &c.ClientSecret,
		EnvLogLevel:     &c.LogLevel,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url: %q is not an absolute URL", c.BaseURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout: must be positive"))
	}
	if _, err := across.ParseMission(c.Mission); err != nil {
		errs = append(errs, fmt.Errorf("mission: %w", err))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if (c.ClientID == "") != (c.ClientSecret == "") {
		errs = append(errs, errors.New("client_id and client_secret must be set together"))
	}
	if c.ResolveCacheSize < 0 {
		errs = append(errs, errors.New("resolve_cache_size: must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("local_zone: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the zone for timestamps given without one. Empty means
// UTC.
func (c Config) Location() (*time.Location, error) {
	if c.LocalZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.LocalZone)
}

// ClientOptions returns the across options these settings imply.
func (c Config) ClientOptions() []across.Option {
	opts := []across.Option{
		across.WithBaseURL(c.BaseURL),
		across.WithTimeout(time.Duration(c.Timeout)),
	}
	if c.ClientID != "" {
		opts = append(opts, across.WithClientCredentials(c.ClientID, c.ClientSecret))
	}
	if c.ResolveCacheSize > 0 {
		opts = append(opts, across.WithResolveCacheSize(c.ResolveCacheSize))
	}
	return opts
}
