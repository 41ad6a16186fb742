// Package portfolio is the admin content-management client for the
// portfolio backend: session handling, a local content cache, an
// optimistic sync engine, selection and filtering, and a renderer-agnostic
// dashboard controller.
package portfolio

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/dashboard"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/logging/console"
	"github.com/goliatone/go-portfolio/internal/logging/gologger"
	"github.com/goliatone/go-portfolio/internal/markdown"
	"github.com/goliatone/go-portfolio/internal/selection"
	"github.com/goliatone/go-portfolio/internal/session"
	syncengine "github.com/goliatone/go-portfolio/internal/sync"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// ErrFeatureDisabled is returned when a host calls a surface its
// configuration switched off.
var ErrFeatureDisabled = errors.New("portfolio: feature disabled by configuration")

// Content type re-exports so hosts stay off the internal packages.
type (
	// Item is a single piece of portfolio content.
	Item = content.Item
	// Draft is a staged, unsaved edit.
	Draft = content.Draft
	// ContentType identifies a content category.
	ContentType = content.Type
	// BulkAction is a batch operation name.
	BulkAction = content.BulkAction
	// User is the authenticated admin identity.
	User = content.User
	// Row is the dashboard view model for one list entry.
	Row = dashboard.Row
)

// Module wires the client together: one cache, one session, one sync
// engine, and the view-facing layers on top.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	cache     *content.Cache
	client    *api.Client
	session   *session.Store
	engine    *syncengine.Engine
	selection *selection.State
	dashboard *dashboard.Controller
	importer  *markdown.Importer
}

// Option configures the module at construction time.
type Option func(*moduleDeps)

type moduleDeps struct {
	provider   interfaces.LoggerProvider
	httpClient *http.Client
	storage    session.TokenStorage
	notifier   interfaces.Notifier
}

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		if provider != nil {
			d.provider = provider
		}
	}
}

// WithHTTPClient overrides the transport used for backend calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(d *moduleDeps) {
		if httpClient != nil {
			d.httpClient = httpClient
		}
	}
}

// WithTokenStorage overrides where the bearer token persists. Defaults to a
// file under the user config directory.
func WithTokenStorage(storage session.TokenStorage) Option {
	return func(d *moduleDeps) {
		if storage != nil {
			d.storage = storage
		}
	}
}

// WithNotifier routes transient success and failure messages to the host UI.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(d *moduleDeps) {
		if notifier != nil {
			d.notifier = notifier
		}
	}
}

type tokenSourceFunc func() string

func (f tokenSourceFunc) Token() string { return f() }

// New validates the configuration and assembles the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		if opt != nil {
			opt(deps)
		}
	}

	provider := deps.provider
	if provider == nil {
		built, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	storage := deps.storage
	if storage == nil {
		fileStorage, err := session.NewFileTokenStorage(cfg.Session.TokenPath)
		if err != nil {
			return nil, err
		}
		storage = fileStorage
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		cache:    content.NewCache(),
	}

	// The session store and the API client reference each other: the client
	// reads the token from the store, the store logs in through the client.
	// The token source defers through the module so both can be built.
	clientOpts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logging.APILogger(provider)),
		api.WithAuthFailureHook(func() {
			if m.session != nil {
				m.session.Invalidate()
			}
		}),
	}
	if deps.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(deps.httpClient))
	}
	m.client = api.New(cfg.API.BaseURL, tokenSourceFunc(func() string {
		if m.session == nil {
			return ""
		}
		return m.session.Token()
	}), clientOpts...)

	m.session = session.NewStore(storage, m.client,
		session.WithLogger(logging.SessionLogger(provider)),
		session.WithLogoutHook(m.cache.Reset),
	)

	engineOpts := []syncengine.Option{
		syncengine.WithLogger(logging.SyncLogger(provider)),
	}
	if deps.notifier != nil {
		engineOpts = append(engineOpts, syncengine.WithNotifier(deps.notifier))
	}
	m.engine = syncengine.New(m.cache, m.client, engineOpts...)

	m.selection = selection.New(m.cache)
	m.dashboard = dashboard.New(m.cache, m.engine, m.selection,
		dashboard.WithLogger(logging.DashboardLogger(provider)),
	)

	if cfg.Markdown.Enabled {
		m.importer = markdown.NewImporter(
			markdown.WithLogger(logging.MarkdownLogger(provider)),
			markdown.WithContentDir(cfg.Markdown.ContentDir),
		)
	}

	return m, nil
}

// Session exposes the session store.
func (m *Module) Session() *session.Store { return m.session }

// Cache exposes the content cache.
func (m *Module) Cache() *content.Cache { return m.cache }

// Sync exposes the sync engine.
func (m *Module) Sync() *syncengine.Engine { return m.engine }

// Selection exposes the selection and filter state.
func (m *Module) Selection() *selection.State { return m.selection }

// Dashboard exposes the dashboard controller.
func (m *Module) Dashboard() *dashboard.Controller { return m.dashboard }

// Client exposes the typed API client for read-only extras.
func (m *Module) Client() *api.Client { return m.client }

// LoggerProvider exposes the provider the module logs through so hosts can
// scope additional loggers consistently.
func (m *Module) LoggerProvider() interfaces.LoggerProvider { return m.provider }

// Importer exposes the markdown importer when the feature is enabled.
func (m *Module) Importer() (*markdown.Importer, error) {
	if m.importer == nil {
		return nil, ErrFeatureDisabled
	}
	return m.importer, nil
}

// Analytics fetches the read-only traffic summary.
func (m *Module) Analytics(ctx context.Context) (content.Analytics, error) {
	if !m.cfg.Features.Analytics {
		return content.Analytics{}, ErrFeatureDisabled
	}
	out, err := m.client.Analytics(ctx)
	if err != nil {
		return content.Analytics{}, api.Categorize(err)
	}
	return out, nil
}

// Audit fetches the append-only audit trail.
func (m *Module) Audit(ctx context.Context) ([]content.AuditEntry, error) {
	if !m.cfg.Features.Audit {
		return nil, ErrFeatureDisabled
	}
	out, err := m.client.Audit(ctx)
	if err != nil {
		return nil, api.Categorize(err)
	}
	return out, nil
}

// Users fetches the admin user roster.
func (m *Module) Users(ctx context.Context) ([]content.User, error) {
	if !m.cfg.Features.Users {
		return nil, ErrFeatureDisabled
	}
	out, err := m.client.Users(ctx)
	if err != nil {
		return nil, api.Categorize(err)
	}
	return out, nil
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "noop":
		return noopProvider{}, nil
	}
	return nil, ErrLoggingProviderUnknown
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
