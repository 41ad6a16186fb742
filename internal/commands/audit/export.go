package auditcmd

import (
	"context"
	"encoding/json"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const exportAuditMessageType = "portfolio.audit.export"

// maxExportRecords caps a single export so a runaway trail cannot exhaust
// the client.
const maxExportRecords = 10000

// AuditFetcher is the slice of the API client the export command reads from.
type AuditFetcher interface {
	Audit(ctx context.Context) ([]content.AuditEntry, error)
}

// ExportAuditCommand dumps the newest audit entries as JSON lines. A zero
// MaxRecords exports everything up to the hard cap.
type ExportAuditCommand struct {
	MaxRecords int `json:"max_records,omitempty"`
}

// Type implements command.Message.
func (ExportAuditCommand) Type() string { return exportAuditMessageType }

// Validate bounds the record limit.
func (m ExportAuditCommand) Validate() error {
	errs := validation.Errors{}
	if m.MaxRecords < 0 {
		errs["max_records"] = validation.NewError("portfolio.audit.export.max_invalid", "max_records must not be negative")
	}
	if m.MaxRecords > maxExportRecords {
		errs["max_records"] = validation.NewError("portfolio.audit.export.max_exceeded", "max_records exceeds the export cap")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportAuditHandler streams audit entries to a sink.
type ExportAuditHandler struct {
	inner *commands.Handler[ExportAuditCommand]
}

// NewExportAuditHandler constructs a handler writing JSON lines to sink.
func NewExportAuditHandler(fetcher AuditFetcher, sink io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[ExportAuditCommand]) *ExportAuditHandler {
	exec := func(ctx context.Context, msg ExportAuditCommand) error {
		entries, err := fetcher.Audit(ctx)
		if err != nil {
			return err
		}

		limit := msg.MaxRecords
		if limit == 0 || limit > maxExportRecords {
			limit = maxExportRecords
		}
		if len(entries) > limit {
			entries = entries[:limit]
		}

		encoder := json.NewEncoder(sink)
		for _, entry := range entries {
			if err := encoder.Encode(entry); err != nil {
				return err
			}
		}
		commands.EnsureLogger(logger).Info("audit.export.done", "records", len(entries))
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportAuditCommand]{
		commands.WithLogger[ExportAuditCommand](logger),
		commands.WithOperation[ExportAuditCommand]("audit.export"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportAuditHandler{
		inner: commands.NewHandler[ExportAuditCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportAuditCommand].Execute.
func (h *ExportAuditHandler) Execute(ctx context.Context, msg ExportAuditCommand) error {
	return h.inner.Execute(ctx, msg)
}
