package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const loadContentMessageType = "portfolio.content.load"

// LoadContentCommand requests a fresh fetch of one or more content types.
// An empty Types slice loads everything.
type LoadContentCommand struct {
	Types []content.Type `json:"types,omitempty"`
}

// Type implements command.Message.
func (LoadContentCommand) Type() string { return loadContentMessageType }

// Validate ensures every requested type is a known category.
func (m LoadContentCommand) Validate() error {
	errs := validation.Errors{}
	for _, t := range m.Types {
		if !t.Valid() {
			errs["types"] = validation.NewError("portfolio.content.load.type_unknown", "unknown content type "+string(t))
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoadContentHandler refreshes cached content through the sync engine.
type LoadContentHandler struct {
	inner *commands.Handler[LoadContentCommand]
}

// NewLoadContentHandler constructs a handler wired to the provided syncer.
func NewLoadContentHandler(syncer Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[LoadContentCommand]) *LoadContentHandler {
	exec := func(ctx context.Context, msg LoadContentCommand) error {
		return syncer.LoadAll(ctx, msg.Types...)
	}

	handlerOpts := []commands.HandlerOption[LoadContentCommand]{
		commands.WithLogger[LoadContentCommand](logger),
		commands.WithOperation[LoadContentCommand]("content.load"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LoadContentHandler{
		inner: commands.NewHandler[LoadContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LoadContentCommand].Execute.
func (h *LoadContentHandler) Execute(ctx context.Context, msg LoadContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
