package sync

import (
	"context"
	"fmt"
	"strings"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Backend is the slice of the API client the engine drives.
type Backend interface {
	List(ctx context.Context, t content.Type) ([]content.Item, error)
	Create(ctx context.Context, item content.Item) (content.Item, error)
	Update(ctx context.Context, item content.Item) (content.Item, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, t content.Type, orders []api.OrderUpdate) error
	Bulk(ctx context.Context, action content.BulkAction, ids []string) error
}

// Engine reconciles the content cache with the backend. Optimistic
// operations mutate the cache first and undo on failure; confirm-first
// operations touch the cache only after the backend accepts.
//
// Every mutation is stamped with a request token. When a response lands the
// engine acts only if its token is still the latest for that target, so a
// slow failure can never clobber the state a newer operation produced.
type Engine struct {
	cache    *content.Cache
	backend  Backend
	notifier interfaces.Notifier
	logger   interfaces.Logger

	mu     gosync.Mutex
	tokens map[string]uuid.UUID
}

// Option configures the engine at construction time.
type Option func(*Engine)

// WithNotifier routes transient success and failure messages to the host UI.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(e *Engine) {
		if notifier != nil {
			e.notifier = notifier
		}
	}
}

// WithLogger injects the sync logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine over the given cache and backend.
func New(cache *content.Cache, backend Backend, opts ...Option) *Engine {
	e := &Engine{
		cache:    cache,
		backend:  backend,
		notifier: noopNotifier{},
		logger:   logging.NoOp(),
		tokens:   make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Failure(string) {}

// mutation pairs an optimistic cache change with its undo so the two cannot
// drift apart.
type mutation struct {
	target string
	apply  func(*content.Cache)
	revert func(*content.Cache)
}

// begin stamps a new request token for the mutation target and applies the
// optimistic change.
func (e *Engine) begin(m mutation) uuid.UUID {
	token := uuid.New()
	e.mu.Lock()
	e.tokens[m.target] = token
	e.mu.Unlock()

	if m.apply != nil {
		m.apply(e.cache)
	}
	return token
}

// settle resolves a finished request. Stale responses are dropped whole:
// no commit, no revert.
func (e *Engine) settle(m mutation, token uuid.UUID, failed bool) bool {
	e.mu.Lock()
	current := e.tokens[m.target] == token
	e.mu.Unlock()

	if !current {
		e.logger.Debug("sync.response.superseded", "target", m.target)
		return false
	}
	if failed && m.revert != nil {
		m.revert(e.cache)
	}
	return true
}

// LoadAll fetches every given content type, defaulting to all of them. Each
// type loads independently; failures are collected into a PartialLoadError
// while the types that did load keep their fresh lists.
func (e *Engine) LoadAll(ctx context.Context, types ...content.Type) error {
	if len(types) == 0 {
		types = content.AllTypes()
	}

	failures := make(map[content.Type]error)
	for _, t := range types {
		if err := e.Load(ctx, t); err != nil {
			failures[t] = err
		}
	}
	if len(failures) == 0 {
		return nil
	}
	err := &PartialLoadError{Failures: failures}
	e.notifier.Failure(err.Error())
	return err
}

// Load fetches a single type and replaces its cached list.
func (e *Engine) Load(ctx context.Context, t content.Type) error {
	m := mutation{target: "type:" + t.APISlug()}
	token := e.begin(m)

	items, err := e.backend.List(ctx, t)
	if err != nil {
		e.settle(m, token, true)
		e.logger.Warn("sync.load.failed", "type", t, "error", err)
		return api.Categorize(err)
	}
	if e.settle(m, token, false) {
		e.cache.ReplaceAll(t, items)
		e.logger.Debug("sync.load.ok", "type", t, "count", len(items))
	}
	return nil
}

// SetVisibility flips an item's public flag optimistically and reverts if
// the backend refuses. A stale failure never reverts state a newer toggle
// already produced.
func (e *Engine) SetVisibility(ctx context.Context, t content.Type, id string, visible bool) error {
	before, ok := e.cache.Find(t, id)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownItem, t, id)
	}

	m := mutation{
		target: "item:" + id,
		apply: func(c *content.Cache) {
			c.Patch(t, []string{id}, func(item content.Item) content.Item {
				item.Visible = visible
				return item
			})
		},
		revert: func(c *content.Cache) {
			c.Patch(t, []string{id}, func(item content.Item) content.Item {
				item.Visible = before.Visible
				return item
			})
		},
	}
	token := e.begin(m)

	if err := e.backend.SetVisibility(ctx, id, visible); err != nil {
		e.settle(m, token, true)
		e.notifier.Failure("Could not update visibility")
		e.logger.Warn("sync.visibility.failed", "id", id, "error", err)
		return api.Categorize(err)
	}
	e.settle(m, token, false)
	return nil
}

// Reorder moves the item at fromIndex to toIndex within the type's ordered
// view, renumbers every item densely from zero, and submits the full
// ranking. On rejection the list is re-fetched; if that recovery also fails
// the optimistic list stays and the error says so.
func (e *Engine) Reorder(ctx context.Context, t content.Type, fromIndex, toIndex int) error {
	ordered := e.cache.SortedByOrder(t)
	if fromIndex < 0 || fromIndex >= len(ordered) || toIndex < 0 || toIndex >= len(ordered) {
		return fmt.Errorf("%w: index out of range", ErrUnknownItem)
	}
	if fromIndex == toIndex {
		return nil
	}

	reordered := spliceMove(ordered, fromIndex, toIndex)
	for i := range reordered {
		reordered[i].Order = i
	}

	orders := make([]api.OrderUpdate, len(reordered))
	for i, item := range reordered {
		orders[i] = api.OrderUpdate{ID: item.ID, Order: item.Order}
	}

	m := mutation{
		target: "type:" + t.APISlug(),
		apply: func(c *content.Cache) {
			c.ReplaceAll(t, reordered)
		},
	}
	token := e.begin(m)

	if err := e.backend.Reorder(ctx, t, orders); err != nil {
		e.notifier.Failure("Could not save new order")
		e.logger.Warn("sync.reorder.failed", "type", t, "error", err)
		if !e.settle(m, token, true) {
			return api.Categorize(err)
		}
		if fetchErr := e.Load(ctx, t); fetchErr != nil {
			return fmt.Errorf("%w: %v", ErrStaleView, err)
		}
		return api.Categorize(err)
	}
	e.settle(m, token, false)
	return nil
}

// Save persists a draft. Validation runs before any network call: an empty
// title or a schema violation fails locally. New drafts are created,
// persisted items updated; the cache only changes once the backend confirms
// and returns the authoritative record.
func (e *Engine) Save(ctx context.Context, draft content.Draft) (content.Item, error) {
	item := draft.Item
	if strings.TrimSpace(item.Title) == "" {
		return content.Item{}, api.Categorize(api.NewValidationError("title", "title is required"))
	}
	if err := content.ValidateItem(item); err != nil {
		return content.Item{}, api.Categorize(api.NewValidationError("item", err.Error()))
	}

	var (
		saved content.Item
		err   error
	)
	if item.Persisted() {
		saved, err = e.backend.Update(ctx, item)
	} else {
		saved, err = e.backend.Create(ctx, item)
	}
	if err != nil {
		e.notifier.Failure("Could not save item")
		e.logger.Warn("sync.save.failed", "type", item.Type, "error", err)
		return content.Item{}, api.Categorize(err)
	}

	e.cache.Upsert(saved.Type, saved)
	e.notifier.Success("Saved " + saved.Title)
	e.logger.Info("sync.save.ok", "type", saved.Type, "id", saved.ID)
	return saved, nil
}

// Delete removes an item, confirm-first: the cached entry goes away only
// after the backend accepts. Remaining order values keep their gaps.
func (e *Engine) Delete(ctx context.Context, t content.Type, id string) error {
	if _, ok := e.cache.Find(t, id); !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownItem, t, id)
	}

	if err := e.backend.Delete(ctx, id); err != nil {
		e.notifier.Failure("Could not delete item")
		e.logger.Warn("sync.delete.failed", "id", id, "error", err)
		return api.Categorize(err)
	}

	e.cache.Remove(t, id)
	e.notifier.Success("Item deleted")
	return nil
}

// Bulk applies show, hide, or delete to a set of ids, confirm-first. On
// success exactly the submitted ids are patched or removed; ids that
// vanished from the cache in the meantime are skipped silently.
func (e *Engine) Bulk(ctx context.Context, t content.Type, action content.BulkAction, ids []string) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBulkAction, action)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := e.backend.Bulk(ctx, action, ids); err != nil {
		e.notifier.Failure("Bulk action failed")
		e.logger.Warn("sync.bulk.failed", "action", action, "count", len(ids), "error", err)
		return api.Categorize(err)
	}

	switch action {
	case content.BulkDelete:
		removed := e.cache.RemoveAll(t, ids)
		e.notifier.Success(fmt.Sprintf("Deleted %d items", removed))
	case content.BulkShow, content.BulkHide:
		visible := action == content.BulkShow
		e.cache.Patch(t, ids, func(item content.Item) content.Item {
			item.Visible = visible
			return item
		})
		e.notifier.Success(fmt.Sprintf("Updated %d items", len(ids)))
	}
	e.logger.Info("sync.bulk.ok", "action", action, "count", len(ids))
	return nil
}

// spliceMove returns a copy of items with the element at from moved to to,
// everything else shifted to close the gap.
func spliceMove(items []content.Item, from, to int) []content.Item {
	out := make([]content.Item, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	tail := make([]content.Item, len(out[to:]))
	copy(tail, out[to:])
	out = append(out[:to], items[from])
	out = append(out, tail...)
	return out
}
