package contentcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const deleteContentMessageType = "portfolio.content.delete"

// DeleteContentCommand removes one persisted item.
type DeleteContentCommand struct {
	ContentType content.Type `json:"content_type"`
	ID          string       `json:"id"`
}

// Type implements command.Message.
func (DeleteContentCommand) Type() string { return deleteContentMessageType }

// Validate ensures the message names a concrete item.
func (m DeleteContentCommand) Validate() error {
	errs := validation.Errors{}
	if !m.ContentType.Valid() {
		errs["content_type"] = validation.NewError("portfolio.content.delete.type_unknown", "unknown content type "+string(m.ContentType))
	}
	if strings.TrimSpace(m.ID) == "" {
		errs["id"] = validation.NewError("portfolio.content.delete.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteContentHandler removes items through the sync engine.
type DeleteContentHandler struct {
	inner *commands.Handler[DeleteContentCommand]
}

// NewDeleteContentHandler constructs a handler wired to the provided syncer.
func NewDeleteContentHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteContentCommand]) *DeleteContentHandler {
	exec := func(ctx context.Context, msg DeleteContentCommand) error {
		return syncer.Delete(ctx, msg.ContentType, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteContentCommand]{
		commands.WithLogger[DeleteContentCommand](logger),
		commands.WithOperation[DeleteContentCommand]("content.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteContentHandler{
		inner: commands.NewHandler[DeleteContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteContentCommand].Execute.
func (h *DeleteContentHandler) Execute(ctx context.Context, msg DeleteContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
