package contentcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const setVisibilityMessageType = "portfolio.content.set_visibility"

// SetVisibilityCommand flips the public display flag for one item.
type SetVisibilityCommand struct {
	ContentType content.Type `json:"content_type"`
	ID          string       `json:"id"`
	Visible     bool         `json:"visible"`
}

// Type implements command.Message.
func (SetVisibilityCommand) Type() string { return setVisibilityMessageType }

// Validate ensures the message names a concrete item.
func (m SetVisibilityCommand) Validate() error {
	errs := validation.Errors{}
	if !m.ContentType.Valid() {
		errs["content_type"] = validation.NewError("portfolio.content.set_visibility.type_unknown", "unknown content type "+string(m.ContentType))
	}
	if strings.TrimSpace(m.ID) == "" {
		errs["id"] = validation.NewError("portfolio.content.set_visibility.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetVisibilityHandler toggles item visibility through the sync engine.
type SetVisibilityHandler struct {
	inner *commands.Handler[SetVisibilityCommand]
}

// NewSetVisibilityHandler constructs a handler wired to the provided syncer.
func NewSetVisibilityHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[SetVisibilityCommand]) *SetVisibilityHandler {
	exec := func(ctx context.Context, msg SetVisibilityCommand) error {
		return syncer.SetVisibility(ctx, msg.ContentType, msg.ID, msg.Visible)
	}

	handlerOpts := []commands.HandlerOption[SetVisibilityCommand]{
		commands.WithLogger[SetVisibilityCommand](logger),
		commands.WithOperation[SetVisibilityCommand]("content.set_visibility"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetVisibilityHandler{
		inner: commands.NewHandler[SetVisibilityCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetVisibilityCommand].Execute.
func (h *SetVisibilityHandler) Execute(ctx context.Context, msg SetVisibilityCommand) error {
	return h.inner.Execute(ctx, msg)
}
