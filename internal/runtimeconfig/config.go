package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrAPIBaseURLRequired = errors.New("portfolio config: api base url is required")
var ErrAPITimeoutInvalid = errors.New("portfolio config: api timeout must be positive")
var ErrLoggingProviderUnknown = errors.New("portfolio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("portfolio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("portfolio config: logging format is invalid")
var ErrMarkdownContentDirRequired = errors.New("portfolio config: markdown content directory is required when import is enabled")

// Config aggregates feature flags and adapter bindings for the admin client.
// Fields intentionally use simple types so host applications can extend them.
type Config struct {
	API      APIConfig
	Session  SessionConfig
	Logging  LoggingConfig
	Markdown MarkdownConfig
	Features Features
}

// APIConfig locates the backend REST surface.
type APIConfig struct {
	BaseURL string        `env:"PORTFOLIO_API_BASE_URL"`
	Timeout time.Duration `env:"PORTFOLIO_API_TIMEOUT" envDefault:"15s"`
}

// SessionConfig controls credential persistence.
type SessionConfig struct {
	// TokenPath overrides where the bearer token file lives. Empty selects
	// the platform user config directory.
	TokenPath string `env:"PORTFOLIO_TOKEN_PATH"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `env:"PORTFOLIO_LOG_PROVIDER" envDefault:"console"`
	Level     string   `env:"PORTFOLIO_LOG_LEVEL"    envDefault:"info"`
	Format    string   `env:"PORTFOLIO_LOG_FORMAT"   envDefault:"console"`
	AddSource bool     `env:"PORTFOLIO_LOG_SOURCE"`
	Focus     []string `env:"PORTFOLIO_LOG_FOCUS"    envSeparator:","`
}

// MarkdownConfig controls the markdown draft importer.
type MarkdownConfig struct {
	Enabled    bool   `env:"PORTFOLIO_MARKDOWN_ENABLED"`
	ContentDir string `env:"PORTFOLIO_MARKDOWN_DIR"`
}

// Features toggles optional read-only admin surfaces.
type Features struct {
	Analytics bool `env:"PORTFOLIO_FEATURE_ANALYTICS" envDefault:"true"`
	Audit     bool `env:"PORTFOLIO_FEATURE_AUDIT"     envDefault:"true"`
	Users     bool `env:"PORTFOLIO_FEATURE_USERS"     envDefault:"true"`
}

// DefaultConfig returns the baseline configuration used when hosts do not
// override anything.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{Timeout: 15 * time.Second},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{Analytics: true, Audit: true, Users: true},
	}
}

// FromEnv loads configuration from PORTFOLIO_* environment variables on top
// of the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency, returning the first sentinel
// error encountered.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrAPIBaseURLRequired
	}
	if c.API.Timeout <= 0 {
		return ErrAPITimeoutInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
	case "", "console", "gologger", "noop":
	default:
		return ErrLoggingProviderUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	if c.Markdown.Enabled && strings.TrimSpace(c.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	return nil
}
