package selection_test

import (
	"testing"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/selection"
)

func seedCache() *content.Cache {
	cache := content.NewCache()
	cache.ReplaceAll(content.TypeProjects, []content.Item{
		{ID: "p1", Title: "Weather App", Description: "forecast client", Type: content.TypeProjects, Order: 2},
		{ID: "p2", Title: "Portfolio Site", Description: "this very site", Type: content.TypeProjects, Order: 0},
		{ID: "p3", Title: "Chess Engine", Description: "alpha beta search", Type: content.TypeProjects, Order: 1},
	})
	cache.ReplaceAll(content.TypeSkills, []content.Item{
		{ID: "s1", Title: "Go", Type: content.TypeSkills, Order: 0},
	})
	return cache
}

func TestVisibleItemsSortedByOrder(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)

	items := state.VisibleItems()
	if len(items) != 3 {
		t.Fatalf("visible = %d", len(items))
	}
	if items[0].ID != "p2" || items[1].ID != "p3" || items[2].ID != "p1" {
		t.Fatalf("order = %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestSearchMatchesTitleAndDescriptionCaseInsensitive(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)

	state.SetSearch("WEATHER")
	if items := state.VisibleItems(); len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("title search = %v", items)
	}

	state.SetSearch("alpha beta")
	if items := state.VisibleItems(); len(items) != 1 || items[0].ID != "p3" {
		t.Fatalf("description search = %v", items)
	}

	state.SetSearch("")
	if items := state.VisibleItems(); len(items) != 3 {
		t.Fatalf("empty search = %d items", len(items))
	}
}

func TestToggleSelectFlips(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)

	state.ToggleSelect("p1")
	if !state.Selected("p1") {
		t.Fatal("expected p1 selected")
	}
	state.ToggleSelect("p1")
	if state.Selected("p1") {
		t.Fatal("expected p1 deselected")
	}
}

func TestSelectAllHonorsFilter(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)
	state.SetSearch("site")

	state.SelectAll()
	if !state.Selected("p2") {
		t.Fatal("expected filtered-in item selected")
	}
	if state.Selected("p1") || state.Selected("p3") {
		t.Fatal("filtered-out items must not be selected")
	}
}

func TestActiveSelectionDropsVanishedIDs(t *testing.T) {
	cache := seedCache()
	state := selection.New(cache)
	state.SetActiveType(content.TypeProjects)

	state.ToggleSelect("p1")
	state.ToggleSelect("p2")

	cache.Remove(content.TypeProjects, "p1")

	got := state.ActiveSelection()
	if len(got) != 1 || got[0] != "p2" {
		t.Fatalf("active selection = %v", got)
	}
}

func TestActiveSelectionExcludesFilteredIDs(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)

	state.ToggleSelect("p1")
	state.ToggleSelect("p2")
	state.SetSearch("weather")

	got := state.ActiveSelection()
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("active selection = %v", got)
	}
}

func TestSwitchingTypeClearsSelection(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)
	state.ToggleSelect("p1")

	state.SetActiveType(content.TypeSkills)
	if state.Selected("p1") {
		t.Fatal("selection must not survive a tab switch")
	}
	if state.ActiveType() != content.TypeSkills {
		t.Fatalf("active type = %s", state.ActiveType())
	}

	state.SetActiveType(content.Type("bogus"))
	if state.ActiveType() != content.TypeSkills {
		t.Fatal("invalid type must be ignored")
	}
}

func TestClearSelection(t *testing.T) {
	state := selection.New(seedCache())
	state.SetActiveType(content.TypeProjects)
	state.ToggleSelect("p1")
	state.ToggleSelect("p2")

	state.ClearSelection()
	if len(state.ActiveSelection()) != 0 {
		t.Fatal("expected empty selection")
	}
}
