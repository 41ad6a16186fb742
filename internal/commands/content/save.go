package contentcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const saveContentMessageType = "portfolio.content.save"

// SaveContentCommand persists a staged draft, creating or updating
// depending on whether the item already has a backend identity.
type SaveContentCommand struct {
	Draft content.Draft `json:"draft"`
}

// Type implements command.Message.
func (SaveContentCommand) Type() string { return saveContentMessageType }

// Validate rejects drafts that would fail before reaching the backend.
func (m SaveContentCommand) Validate() error {
	errs := validation.Errors{}
	if !m.Draft.Item.Type.Valid() {
		errs["type"] = validation.NewError("portfolio.content.save.type_unknown", "unknown content type "+string(m.Draft.Item.Type))
	}
	if strings.TrimSpace(m.Draft.Item.Title) == "" {
		errs["title"] = validation.NewError("portfolio.content.save.title_required", "title is required")
	}
	if !m.Draft.Item.Status.Valid() {
		errs["status"] = validation.NewError("portfolio.content.save.status_invalid", "status must be completed, ongoing, or archived")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveContentHandler saves drafts through the sync engine.
type SaveContentHandler struct {
	inner *commands.Handler[SaveContentCommand]
}

// NewSaveContentHandler constructs a handler wired to the provided syncer.
func NewSaveContentHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[SaveContentCommand]) *SaveContentHandler {
	exec := func(ctx context.Context, msg SaveContentCommand) error {
		_, err := syncer.Save(ctx, msg.Draft)
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveContentCommand]{
		commands.WithLogger[SaveContentCommand](logger),
		commands.WithOperation[SaveContentCommand]("content.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveContentHandler{
		inner: commands.NewHandler[SaveContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveContentCommand].Execute.
func (h *SaveContentHandler) Execute(ctx context.Context, msg SaveContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
