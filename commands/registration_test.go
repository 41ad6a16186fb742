package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/session"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func newBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-cmd",
			"user":  content.User{ID: "u1", Email: "admin@example.com", Role: content.RoleAdmin},
		})
	})
	mux.HandleFunc("GET /api/admin/content/{type}", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "GET "+r.URL.Path)
		if r.PathValue("type") == "projects" {
			_ = json.NewEncoder(w).Encode([]content.Item{
				{ID: "p1", Title: "Alpha", Type: content.TypeProjects, Visible: true, Order: 0},
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]content.Item{})
	})
	mux.HandleFunc("PATCH /api/admin/content/{id}/visibility", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "PATCH "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/admin/audit", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "GET "+r.URL.Path)
		_ = json.NewEncoder(w).Encode([]content.AuditEntry{
			{ID: "a1", Action: "update", EntityType: "projects", EntityID: "p1", User: "admin"},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &calls
}

func newModule(t *testing.T, server *httptest.Server, mutate func(*portfolio.Config)) *portfolio.Module {
	t.Helper()
	cfg := portfolio.DefaultConfig()
	cfg.API.BaseURL = server.URL
	cfg.Logging.Provider = "noop"
	if mutate != nil {
		mutate(&cfg)
	}

	module, err := portfolio.New(cfg, portfolio.WithTokenStorage(session.NewMemoryTokenStorage()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.Session().Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return module
}

func TestRegisterModuleCommandsBuildsAndRecordsHandlers(t *testing.T) {
	server, _ := newBackend(t)
	module := newModule(t, server, nil)
	registry := &recordingRegistry{}

	set, err := RegisterModuleCommands(module, RegistrationOptions{Registry: registry})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(set.Handlers) != 7 {
		t.Fatalf("expected 7 handlers, got %d", len(set.Handlers))
	}
	if len(registry.handlers) != len(set.Handlers) {
		t.Fatalf("registry recorded %d of %d handlers", len(registry.handlers), len(set.Handlers))
	}
	if set.Load == nil || set.Save == nil || set.SetVisibility == nil ||
		set.Reorder == nil || set.Delete == nil || set.Bulk == nil || set.ExportAudit == nil {
		t.Fatal("expected every operation handler to be constructed")
	}
}

func TestRegisterModuleCommandsNilModule(t *testing.T) {
	set, err := RegisterModuleCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(set.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(set.Handlers))
	}
}

func TestCommandsDriveSyncEngine(t *testing.T) {
	server, calls := newBackend(t)
	module := newModule(t, server, nil)
	ctx := context.Background()

	set, err := RegisterModuleCommands(module, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if err := set.Load.Execute(ctx, LoadContent{Types: []content.Type{content.TypeProjects}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	items := module.Cache().Get(content.TypeProjects)
	if len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("cache after load = %v", items)
	}

	if err := set.SetVisibility.Execute(ctx, SetVisibility{ContentType: content.TypeProjects, ID: "p1", Visible: false}); err != nil {
		t.Fatalf("set visibility: %v", err)
	}
	if got := module.Cache().Get(content.TypeProjects); got[0].Visible {
		t.Fatal("expected cached item hidden")
	}

	patched := false
	for _, call := range *calls {
		if call == "PATCH /api/admin/content/p1/visibility" {
			patched = true
		}
	}
	if !patched {
		t.Fatalf("backend calls = %v", *calls)
	}
}

func TestSetVisibilityCommandRejectsMissingID(t *testing.T) {
	server, _ := newBackend(t)
	module := newModule(t, server, nil)

	set, err := RegisterModuleCommands(module, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	err = set.SetVisibility.Execute(context.Background(), SetVisibility{ContentType: content.TypeProjects})
	if err == nil {
		t.Fatal("expected validation error for empty id")
	}
}

func TestExportAuditWritesJSONLines(t *testing.T) {
	server, _ := newBackend(t)
	module := newModule(t, server, nil)
	sink := &bytes.Buffer{}

	set, err := RegisterModuleCommands(module, RegistrationOptions{AuditSink: sink})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if err := set.ExportAudit.Execute(context.Background(), ExportAudit{}); err != nil {
		t.Fatalf("export audit: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sink.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one JSON line, got %d: %q", len(lines), sink.String())
	}
	var entry content.AuditEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode export line: %v", err)
	}
	if entry.ID != "a1" || entry.Action != "update" {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestExportAuditRespectsFeatureGate(t *testing.T) {
	server, _ := newBackend(t)
	module := newModule(t, server, func(cfg *portfolio.Config) {
		cfg.Features.Audit = false
	})
	sink := &bytes.Buffer{}

	set, err := RegisterModuleCommands(module, RegistrationOptions{AuditSink: sink})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	err = set.ExportAudit.Execute(context.Background(), ExportAudit{})
	if !errors.Is(err, portfolio.ErrFeatureDisabled) {
		t.Fatalf("expected feature disabled, got %v", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("expected empty sink, got %q", sink.String())
	}
}
