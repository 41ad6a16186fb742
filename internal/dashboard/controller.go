package dashboard

import (
	"context"
	"fmt"
	"strings"
	gosync "sync"

	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/selection"
	"github.com/goliatone/go-portfolio/internal/sync"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Row is the view model for one list entry. Provisional marks a staged
// draft that has never been confirmed by the backend.
type Row struct {
	Item        content.Item
	Selected    bool
	Provisional bool
}

// Controller binds the cache, sync engine, and selection state into the
// gestures a renderer needs: row listing, draft staging, move and drag
// reordering, visibility toggles, and bulk actions. It holds no rendering
// concerns of its own.
type Controller struct {
	cache     *content.Cache
	engine    *sync.Engine
	selection *selection.State
	logger    interfaces.Logger

	mu    gosync.Mutex
	draft *content.Draft
}

// Option configures the controller at construction time.
type Option func(*Controller)

// WithLogger injects the dashboard logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a controller over the shared cache, engine, and selection.
func New(cache *content.Cache, engine *sync.Engine, sel *selection.State, opts ...Option) *Controller {
	c := &Controller{
		cache:     cache,
		engine:    engine,
		selection: sel,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Refresh reloads every content type. Partial failures bubble up so the
// view can flag the types that did not load.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.engine.LoadAll(ctx)
}

// Rows returns the active type's filtered, order-sorted view models. A
// staged draft for a brand new item renders as a provisional trailing row.
func (c *Controller) Rows() []Row {
	items := c.selection.VisibleItems()
	rows := make([]Row, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, Row{
			Item:     item,
			Selected: c.selection.Selected(item.ID),
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft != nil && !c.draft.Item.Persisted() && c.draft.Item.Type == c.selection.ActiveType() {
		rows = append(rows, Row{Item: c.draft.Item.Clone(), Provisional: true})
	}
	return rows
}

// OpenDraft stages a fresh draft for the active type, replacing any staged
// edit.
func (c *Controller) OpenDraft() content.Draft {
	draft := content.NewDraft(c.selection.ActiveType())
	c.mu.Lock()
	c.draft = &draft
	c.mu.Unlock()
	return draft
}

// EditItem stages an edit over a cached item from the active type.
func (c *Controller) EditItem(id string) (content.Draft, error) {
	item, ok := c.cache.Find(c.selection.ActiveType(), id)
	if !ok {
		return content.Draft{}, fmt.Errorf("%w: %s", sync.ErrUnknownItem, id)
	}
	draft := content.DraftOf(item)
	c.mu.Lock()
	c.draft = &draft
	c.mu.Unlock()
	return draft, nil
}

// Draft returns the staged draft, if any.
func (c *Controller) Draft() (content.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return content.Draft{}, false
	}
	return *c.draft, true
}

// UpdateDraft applies an edit function to the staged draft item.
func (c *Controller) UpdateDraft(edit func(*content.Item)) bool {
	if edit == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return false
	}
	edit(&c.draft.Item)
	return true
}

// CancelDraft discards the staged draft without touching the backend.
func (c *Controller) CancelDraft() {
	c.mu.Lock()
	c.draft = nil
	c.mu.Unlock()
}

// SubmitDraft validates the staged draft locally, then saves it through the
// sync engine. The draft stays staged on failure so the user can fix and
// retry; on success it is cleared.
func (c *Controller) SubmitDraft(ctx context.Context) (content.Item, error) {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return content.Item{}, fmt.Errorf("%w: no staged draft", sync.ErrUnknownItem)
	}
	draft := *c.draft
	c.mu.Unlock()

	if strings.TrimSpace(draft.Item.Title) == "" {
		return content.Item{}, api.NewValidationError("title", "title is required")
	}

	saved, err := c.engine.Save(ctx, draft)
	if err != nil {
		return content.Item{}, err
	}

	c.mu.Lock()
	c.draft = nil
	c.mu.Unlock()
	c.logger.Debug("dashboard.draft.saved", "id", saved.ID, "type", saved.Type)
	return saved, nil
}

// ToggleVisibility flips an item's public flag on the active type.
func (c *Controller) ToggleVisibility(ctx context.Context, id string) error {
	item, ok := c.cache.Find(c.selection.ActiveType(), id)
	if !ok {
		return fmt.Errorf("%w: %s", sync.ErrUnknownItem, id)
	}
	return c.engine.SetVisibility(ctx, c.selection.ActiveType(), id, !item.Visible)
}

// Delete removes an item from the active type.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.engine.Delete(ctx, c.selection.ActiveType(), id)
}

// MoveUp moves the row at index one slot toward the top.
func (c *Controller) MoveUp(ctx context.Context, index int) error {
	if index <= 0 {
		return nil
	}
	return c.engine.Reorder(ctx, c.selection.ActiveType(), index, index-1)
}

// MoveDown moves the row at index one slot toward the bottom.
func (c *Controller) MoveDown(ctx context.Context, index int) error {
	t := c.selection.ActiveType()
	if index < 0 || index >= len(c.cache.Get(t))-1 {
		return nil
	}
	return c.engine.Reorder(ctx, t, index, index+1)
}

// DragTo drops the row at fromIndex onto toIndex.
func (c *Controller) DragTo(ctx context.Context, fromIndex, toIndex int) error {
	return c.engine.Reorder(ctx, c.selection.ActiveType(), fromIndex, toIndex)
}

// BulkAction applies show, hide, or delete to the checked items still
// visible in the current view, then clears the selection on success.
func (c *Controller) BulkAction(ctx context.Context, action content.BulkAction) error {
	ids := c.selection.ActiveSelection()
	if len(ids) == 0 {
		return nil
	}
	if err := c.engine.Bulk(ctx, c.selection.ActiveType(), action, ids); err != nil {
		return err
	}
	c.selection.ClearSelection()
	return nil
}
