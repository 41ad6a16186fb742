package content_test

import (
	"testing"

	"github.com/goliatone/go-portfolio/internal/content"
)

func item(id, title string, order int) content.Item {
	return content.Item{
		ID:      id,
		Title:   title,
		Type:    content.TypeProjects,
		Visible: true,
		Order:   order,
	}
}

func TestCacheGetEmptyType(t *testing.T) {
	cache := content.NewCache()
	if got := cache.Get(content.TypeSkills); len(got) != 0 {
		t.Fatalf("expected empty list, got %d items", len(got))
	}
}

func TestCacheUpsertInsertsThenReplaces(t *testing.T) {
	cache := content.NewCache()
	cache.Upsert(content.TypeProjects, item("a", "First", 0))
	cache.Upsert(content.TypeProjects, item("b", "Second", 1))
	cache.Upsert(content.TypeProjects, item("a", "First again", 0))

	got := cache.Get(content.TypeProjects)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "First again" {
		t.Fatalf("expected in-place replace, got %q", got[0].Title)
	}
	if got[1].ID != "b" {
		t.Fatalf("expected untouched relative order, got %q first", got[1].ID)
	}
}

func TestCacheNeverHoldsDuplicateIDs(t *testing.T) {
	cache := content.NewCache()
	ops := []func(){
		func() { cache.Upsert(content.TypeProjects, item("a", "A", 0)) },
		func() { cache.Upsert(content.TypeProjects, item("b", "B", 1)) },
		func() { cache.Upsert(content.TypeProjects, item("a", "A2", 0)) },
		func() { cache.Remove(content.TypeProjects, "b") },
		func() { cache.Upsert(content.TypeProjects, item("b", "B2", 1)) },
		func() { cache.Upsert(content.TypeProjects, item("b", "B3", 2)) },
	}
	for _, op := range ops {
		op()
		seen := map[string]bool{}
		for _, it := range cache.Get(content.TypeProjects) {
			if it.ID == "" {
				continue
			}
			if seen[it.ID] {
				t.Fatalf("duplicate id %q in cache", it.ID)
			}
			seen[it.ID] = true
		}
	}
}

func TestCacheRemoveLeavesOrderValues(t *testing.T) {
	cache := content.NewCache()
	cache.ReplaceAll(content.TypeProjects, []content.Item{
		item("a", "A", 0), item("b", "B", 1), item("c", "C", 2),
	})

	if !cache.Remove(content.TypeProjects, "b") {
		t.Fatal("expected removal to report true")
	}
	got := cache.SortedByOrder(content.TypeProjects)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Order != 0 || got[1].Order != 2 {
		t.Fatalf("expected order values untouched, got %d and %d", got[0].Order, got[1].Order)
	}
}

func TestCachePatchTouchesOnlyRequestedIDs(t *testing.T) {
	cache := content.NewCache()
	cache.ReplaceAll(content.TypeProjects, []content.Item{
		item("a", "A", 0), item("b", "B", 1), item("c", "C", 2),
	})

	patched := cache.Patch(content.TypeProjects, []string{"a", "c"}, func(it content.Item) content.Item {
		it.Visible = false
		return it
	})
	if patched != 2 {
		t.Fatalf("expected 2 patched, got %d", patched)
	}

	for _, it := range cache.Get(content.TypeProjects) {
		wantVisible := it.ID == "b"
		if it.Visible != wantVisible {
			t.Fatalf("item %q visible = %v", it.ID, it.Visible)
		}
	}
}

func TestCacheRemoveAllRemovesExactlyGivenIDs(t *testing.T) {
	cache := content.NewCache()
	cache.ReplaceAll(content.TypeProjects, []content.Item{
		item("a", "A", 0), item("b", "B", 1), item("c", "C", 2),
	})

	removed := cache.RemoveAll(content.TypeProjects, []string{"a", "c", "missing"})
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	got := cache.Get(content.TypeProjects)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only item b to remain, got %v", got)
	}
}

func TestCacheClonesOnReadAndWrite(t *testing.T) {
	cache := content.NewCache()
	original := item("a", "A", 0)
	original.Metadata = map[string]any{"tag": "go"}
	cache.Upsert(content.TypeProjects, original)

	original.Metadata["tag"] = "mutated"

	got := cache.Get(content.TypeProjects)
	if got[0].Metadata["tag"] != "go" {
		t.Fatalf("cache aliased caller metadata: %v", got[0].Metadata)
	}

	got[0].Metadata["tag"] = "mutated again"
	if fresh := cache.Get(content.TypeProjects); fresh[0].Metadata["tag"] != "go" {
		t.Fatalf("cache aliased reader metadata: %v", fresh[0].Metadata)
	}
}

func TestCacheResetClearsEveryType(t *testing.T) {
	cache := content.NewCache()
	cache.Upsert(content.TypeProjects, item("a", "A", 0))
	cache.Upsert(content.TypeSkills, item("s", "Go", 0))

	cache.Reset()

	if len(cache.Get(content.TypeProjects)) != 0 || len(cache.Get(content.TypeSkills)) != 0 {
		t.Fatal("expected reset to clear every list")
	}
}

func TestCacheSortedByOrder(t *testing.T) {
	cache := content.NewCache()
	cache.ReplaceAll(content.TypeProjects, []content.Item{
		item("c", "C", 2), item("a", "A", 0), item("b", "B", 1),
	})

	got := cache.SortedByOrder(content.TypeProjects)
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}
