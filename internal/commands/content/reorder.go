package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const reorderContentMessageType = "portfolio.content.reorder"

// ReorderContentCommand moves one item to a new position within its type's
// ordered list.
type ReorderContentCommand struct {
	ContentType content.Type `json:"content_type"`
	FromIndex   int          `json:"from_index"`
	ToIndex     int          `json:"to_index"`
}

// Type implements command.Message.
func (ReorderContentCommand) Type() string { return reorderContentMessageType }

// Validate rejects negative positions before the engine range-checks them
// against the live list.
func (m ReorderContentCommand) Validate() error {
	errs := validation.Errors{}
	if !m.ContentType.Valid() {
		errs["content_type"] = validation.NewError("portfolio.content.reorder.type_unknown", "unknown content type "+string(m.ContentType))
	}
	if m.FromIndex < 0 {
		errs["from_index"] = validation.NewError("portfolio.content.reorder.from_invalid", "from_index must not be negative")
	}
	if m.ToIndex < 0 {
		errs["to_index"] = validation.NewError("portfolio.content.reorder.to_invalid", "to_index must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderContentHandler submits rankings through the sync engine.
type ReorderContentHandler struct {
	inner *commands.Handler[ReorderContentCommand]
}

// NewReorderContentHandler constructs a handler wired to the provided syncer.
func NewReorderContentHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderContentCommand]) *ReorderContentHandler {
	exec := func(ctx context.Context, msg ReorderContentCommand) error {
		return syncer.Reorder(ctx, msg.ContentType, msg.FromIndex, msg.ToIndex)
	}

	handlerOpts := []commands.HandlerOption[ReorderContentCommand]{
		commands.WithLogger[ReorderContentCommand](logger),
		commands.WithOperation[ReorderContentCommand]("content.reorder"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderContentHandler{
		inner: commands.NewHandler[ReorderContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderContentCommand].Execute.
func (h *ReorderContentHandler) Execute(ctx context.Context, msg ReorderContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
