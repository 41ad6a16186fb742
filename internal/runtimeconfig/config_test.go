package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.API.BaseURL = "https://example.com"
	return cfg
}

func TestValidateRequiresBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAPIBaseURLRequired) {
		t.Fatalf("expected base url error, got %v", err)
	}
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.API.Timeout = 0
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAPITimeoutInvalid) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestValidateRejectsUnknownLoggingProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestValidateMarkdownNeedsContentDir(t *testing.T) {
	cfg := validConfig()
	cfg.Markdown.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected markdown dir error, got %v", err)
	}

	cfg.Markdown.ContentDir = "./content"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_API_BASE_URL", "https://folio.test")
	t.Setenv("PORTFOLIO_API_TIMEOUT", "3s")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "debug")
	t.Setenv("PORTFOLIO_FEATURE_USERS", "false")

	cfg, err := runtimeconfig.FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.API.BaseURL != "https://folio.test" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Features.Users {
		t.Fatal("expected users feature disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
