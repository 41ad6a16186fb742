// Package commands builds the command-message handlers over an assembled
// module so hosts can expose admin operations through CLIs, dispatchers,
// or schedulers.
package commands

import (
	"errors"
	"io"
	"os"

	portfolio "github.com/goliatone/go-portfolio"
	internalcmd "github.com/goliatone/go-portfolio/internal/commands"
	auditcmd "github.com/goliatone/go-portfolio/internal/commands/audit"
	contentcmd "github.com/goliatone/go-portfolio/internal/commands/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Message re-exports so hosts stay off the internal packages.
type (
	// LoadContent requests a fresh fetch of one or more content types.
	LoadContent = contentcmd.LoadContentCommand
	// SaveContent persists a staged draft.
	SaveContent = contentcmd.SaveContentCommand
	// SetVisibility flips the public display flag for one item.
	SetVisibility = contentcmd.SetVisibilityCommand
	// ReorderContent moves one item within its type's ordered list.
	ReorderContent = contentcmd.ReorderContentCommand
	// DeleteContent removes one persisted item.
	DeleteContent = contentcmd.DeleteContentCommand
	// BulkContent applies show, hide, or delete to a set of item ids.
	BulkContent = contentcmd.BulkContentCommand
	// ExportAudit dumps the newest audit entries as JSON lines.
	ExportAudit = auditcmd.ExportAuditCommand
)

// CommandRegistry records command handlers so hosts can expose them via a
// CLI framework or scheduler.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegistrationOptions configures how handlers are built and registered.
type RegistrationOptions struct {
	Registry CommandRegistry
	// AuditSink receives JSON-lines audit exports. Defaults to os.Stdout.
	AuditSink io.Writer
	// LoggerProvider overrides the module's provider for command logging.
	LoggerProvider interfaces.LoggerProvider
}

// Set holds one constructed handler per admin operation.
type Set struct {
	Load          *contentcmd.LoadContentHandler
	Save          *contentcmd.SaveContentHandler
	SetVisibility *contentcmd.SetVisibilityHandler
	Reorder       *contentcmd.ReorderContentHandler
	Delete        *contentcmd.DeleteContentHandler
	Bulk          *contentcmd.BulkContentHandler
	ExportAudit   *auditcmd.ExportAuditHandler

	// Handlers lists every constructed handler in registration order.
	Handlers []any
}

// RegisterModuleCommands builds the command handlers over the module's sync
// engine and admin surfaces and optionally records them with a registry.
// Audit exports go through the module so its feature gate applies.
func RegisterModuleCommands(module *portfolio.Module, opts RegistrationOptions) (*Set, error) {
	if module == nil {
		return &Set{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = module.LoggerProvider()
	}
	sink := opts.AuditSink
	if sink == nil {
		sink = os.Stdout
	}

	contentLogger := internalcmd.CommandLogger(provider, "content")
	syncer := module.Sync()

	set := &Set{
		Load:          contentcmd.NewLoadContentHandler(syncer, contentLogger),
		Save:          contentcmd.NewSaveContentHandler(syncer, contentLogger),
		SetVisibility: contentcmd.NewSetVisibilityHandler(syncer, contentLogger),
		Reorder:       contentcmd.NewReorderContentHandler(syncer, contentLogger),
		Delete:        contentcmd.NewDeleteContentHandler(syncer, contentLogger),
		Bulk:          contentcmd.NewBulkContentHandler(syncer, contentLogger),
		ExportAudit:   auditcmd.NewExportAuditHandler(module, sink, internalcmd.CommandLogger(provider, "audit")),
	}
	set.Handlers = []any{
		set.Load,
		set.Save,
		set.SetVisibility,
		set.Reorder,
		set.Delete,
		set.Bulk,
		set.ExportAudit,
	}

	var errs error
	if opts.Registry != nil {
		for _, handler := range set.Handlers {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}
	return set, errs
}
