package content

import (
	"sort"
	"sync"
)

// Cache is the in-memory source of truth the dashboard renders from. It
// holds one ordered list per content type and is mutated exclusively by the
// sync engine. No network access happens here.
//
// Lists are stored in arbitrary sequence; SortedByOrder produces the
// presentation view. Items are cloned on the way in and out so callers can
// never alias cache internals.
type Cache struct {
	mu    sync.RWMutex
	lists map[Type][]Item
}

// NewCache creates an empty content cache.
func NewCache() *Cache {
	return &Cache{lists: make(map[Type][]Item)}
}

// Get returns the current list for a type, empty if never loaded.
func (c *Cache) Get(t Type) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.lists[t])
}

// SortedByOrder returns the list for a type sorted by ascending order rank,
// the shape every user-facing view presents.
func (c *Cache) SortedByOrder(t Type) []Item {
	items := c.Get(t)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items
}

// ReplaceAll swaps the entire list for a type, used after a full fetch.
func (c *Cache) ReplaceAll(t Type, items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[t] = cloneItems(items)
}

// Upsert inserts the item when its id is not present, otherwise replaces
// the matching entry in place. Relative order of untouched items is kept.
func (c *Cache) Upsert(t Type, item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.lists[t]
	if item.Persisted() {
		for i := range list {
			if list[i].ID == item.ID {
				list[i] = item.Clone()
				return
			}
		}
	}
	c.lists[t] = append(list, item.Clone())
}

// Remove deletes the entry with the given id. Remaining order values are
// untouched; renumbering only happens on an explicit reorder.
func (c *Cache) Remove(t Type, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.lists[t]
	for i := range list {
		if list[i].ID == id {
			c.lists[t] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every entry whose id is in ids and reports how many
// entries went away.
func (c *Cache) RemoveAll(t Type, ids []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	wanted := idSet(ids)
	list := c.lists[t]
	kept := list[:0:0]
	removed := 0
	for _, item := range list {
		if wanted[item.ID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.lists[t] = kept
	return removed
}

// Patch applies a pure transformation to every item whose id is in ids.
// Used for bulk visibility toggling; fn receives a copy and returns the
// replacement value.
func (c *Cache) Patch(t Type, ids []string, fn func(Item) Item) int {
	if fn == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	wanted := idSet(ids)
	list := c.lists[t]
	patched := 0
	for i := range list {
		if !wanted[list[i].ID] {
			continue
		}
		list[i] = fn(list[i].Clone()).Clone()
		patched++
	}
	return patched
}

// Find locates an item by id across the given type, second result false
// when absent.
func (c *Cache) Find(t Type, id string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.lists[t] {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return Item{}, false
}

// FindAny locates an item by id across every type.
func (c *Cache) FindAny(id string) (Item, Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for t, list := range c.lists {
		for _, item := range list {
			if item.ID == id {
				return item.Clone(), t, true
			}
		}
	}
	return Item{}, "", false
}

// Reset clears every list, used on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists = make(map[Type][]Item)
}

func cloneItems(src []Item) []Item {
	if src == nil {
		return nil
	}
	out := make([]Item, len(src))
	for i := range src {
		out[i] = src[i].Clone()
	}
	return out
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
