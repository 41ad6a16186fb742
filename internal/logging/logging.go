package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const (
	rootModule      = "portfolio"
	sessionModule   = "portfolio.session"
	syncModule      = "portfolio.sync"
	apiModule       = "portfolio.api"
	dashboardModule = "portfolio.dashboard"
	markdownModule  = "portfolio.markdown"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as structured context so downstream entries can be filtered.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// SessionLogger returns the logger namespace reserved for the session store.
func SessionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sessionModule)
}

// SyncLogger returns the logger namespace reserved for the sync engine.
func SyncLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, syncModule)
}

// APILogger returns the logger namespace reserved for the REST client.
func APILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, apiModule)
}

// DashboardLogger returns the logger namespace reserved for view binding.
func DashboardLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dashboardModule)
}

// MarkdownLogger returns the logger namespace reserved for draft imports.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil or empty maps are safe.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Trace(string, ...any) {}
func (noOpLogger) Debug(string, ...any) {}
func (noOpLogger) Info(string, ...any) {}
func (noOpLogger) Warn(string, ...any) {}
func (noOpLogger) Error(string, ...any) {}
func (noOpLogger) Fatal(string, ...any) {}

func (l noOpLogger) WithContext(context.Context) interfaces.Logger { return l }
func (l noOpLogger) WithFields(map[string]any) interfaces.Logger   { return l }
