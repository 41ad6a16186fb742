package selection

import (
	"strings"
	"sync"

	"github.com/goliatone/go-portfolio/internal/content"
)

// State tracks which content type is active, the search filter, and the
// checked item ids. It derives views from the cache and never mutates it.
type State struct {
	mu       sync.RWMutex
	cache    *content.Cache
	active   content.Type
	search   string
	selected map[string]bool
}

// New builds a selection state over the cache, starting on the first known
// content type with nothing selected.
func New(cache *content.Cache) *State {
	return &State{
		cache:    cache,
		active:   content.AllTypes()[0],
		selected: make(map[string]bool),
	}
}

// ActiveType returns the tab currently in view.
func (s *State) ActiveType() content.Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveType switches tabs. Selection is cleared because checkboxes
// belong to the list they were made on.
func (s *State) SetActiveType(t content.Type) {
	if !t.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == t {
		return
	}
	s.active = t
	s.selected = make(map[string]bool)
}

// Search returns the current filter text.
func (s *State) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SetSearch updates the filter text. Matching is case-insensitive.
func (s *State) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.TrimSpace(query)
}

// VisibleItems returns the active type's items that match the search text,
// sorted by order rank. An empty search matches everything.
func (s *State) VisibleItems() []content.Item {
	s.mu.RLock()
	active := s.active
	needle := strings.ToLower(s.search)
	s.mu.RUnlock()

	items := s.cache.SortedByOrder(active)
	if needle == "" {
		return items
	}

	matched := items[:0:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// ToggleSelect flips the checkbox for an id.
func (s *State) ToggleSelect(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	s.selected[id] = true
}

// Selected reports whether an id is checked.
func (s *State) Selected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// SelectAll checks every currently visible item. Items hidden by the search
// filter are not touched.
func (s *State) SelectAll() {
	for _, item := range s.VisibleItems() {
		if !item.Persisted() {
			continue
		}
		s.mu.Lock()
		s.selected[item.ID] = true
		s.mu.Unlock()
	}
}

// ClearSelection unchecks everything.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
}

// ActiveSelection returns the checked ids that are still present in the
// visible list, in display order. Ids whose items were deleted or filtered
// away since they were checked never reach a bulk action.
func (s *State) ActiveSelection() []string {
	visible := s.VisibleItems()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.selected))
	for _, item := range visible {
		if s.selected[item.ID] {
			out = append(out, item.ID)
		}
	}
	return out
}
