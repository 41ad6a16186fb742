package contentcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const bulkContentMessageType = "portfolio.content.bulk"

// BulkContentCommand applies show, hide, or delete to a set of item ids.
type BulkContentCommand struct {
	ContentType content.Type       `json:"content_type"`
	Action      content.BulkAction `json:"action"`
	IDs         []string           `json:"ids"`
}

// Type implements command.Message.
func (BulkContentCommand) Type() string { return bulkContentMessageType }

// Validate ensures the action is known and every id is concrete.
func (m BulkContentCommand) Validate() error {
	errs := validation.Errors{}
	if !m.ContentType.Valid() {
		errs["content_type"] = validation.NewError("portfolio.content.bulk.type_unknown", "unknown content type "+string(m.ContentType))
	}
	if !m.Action.Valid() {
		errs["action"] = validation.NewError("portfolio.content.bulk.action_invalid", "action must be show, hide, or delete")
	}
	if len(m.IDs) == 0 {
		errs["ids"] = validation.NewError("portfolio.content.bulk.ids_required", "at least one id is required")
	}
	for _, id := range m.IDs {
		if strings.TrimSpace(id) == "" {
			errs["ids"] = validation.NewError("portfolio.content.bulk.ids_blank", "ids must not contain blanks")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkContentHandler applies batch actions through the sync engine.
type BulkContentHandler struct {
	inner *commands.Handler[BulkContentCommand]
}

// NewBulkContentHandler constructs a handler wired to the provided syncer.
func NewBulkContentHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[BulkContentCommand]) *BulkContentHandler {
	exec := func(ctx context.Context, msg BulkContentCommand) error {
		return syncer.Bulk(ctx, msg.ContentType, msg.Action, msg.IDs)
	}

	handlerOpts := []commands.HandlerOption[BulkContentCommand]{
		commands.WithLogger[BulkContentCommand](logger),
		commands.WithOperation[BulkContentCommand]("content.bulk"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkContentHandler{
		inner: commands.NewHandler[BulkContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkContentCommand].Execute.
func (h *BulkContentHandler) Execute(ctx context.Context, msg BulkContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
