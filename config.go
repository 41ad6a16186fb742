package portfolio

import (
	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
)

// Config is the top-level runtime configuration for the admin client.
type Config = runtimeconfig.Config

// APIConfig configures the backend endpoint.
type APIConfig = runtimeconfig.APIConfig

// SessionConfig configures token persistence.
type SessionConfig = runtimeconfig.SessionConfig

// LoggingConfig configures the logging provider.
type LoggingConfig = runtimeconfig.LoggingConfig

// MarkdownConfig configures the markdown import feature.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// Features toggles the optional read-only admin surfaces.
type Features = runtimeconfig.Features

// DefaultConfig returns the baseline configuration; the API base URL still
// has to be supplied.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv builds a configuration from PORTFOLIO_* environment
// variables layered over the defaults.
func ConfigFromEnv() (Config, error) {
	return runtimeconfig.FromEnv()
}

// Re-exported configuration sentinels so hosts can branch without importing
// internal packages.
var (
	ErrAPIBaseURLRequired     = runtimeconfig.ErrAPIBaseURLRequired
	ErrAPITimeoutInvalid      = runtimeconfig.ErrAPITimeoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)
