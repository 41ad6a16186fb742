package contentcmd_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	contentcmd "github.com/goliatone/go-portfolio/internal/commands/content"
	"github.com/goliatone/go-portfolio/internal/content"
)

type fakeSyncer struct {
	loaded     []content.Type
	visibility []string
	reorders   int
	saved      []content.Draft
	deleted    []string
	bulkAction content.BulkAction
	bulkIDs    []string
}

func (f *fakeSyncer) LoadAll(ctx context.Context, types ...content.Type) error {
	f.loaded = append(f.loaded, types...)
	return nil
}

func (f *fakeSyncer) SetVisibility(ctx context.Context, t content.Type, id string, visible bool) error {
	f.visibility = append(f.visibility, id)
	return nil
}

func (f *fakeSyncer) Reorder(ctx context.Context, t content.Type, fromIndex, toIndex int) error {
	f.reorders++
	return nil
}

func (f *fakeSyncer) Save(ctx context.Context, draft content.Draft) (content.Item, error) {
	f.saved = append(f.saved, draft)
	item := draft.Item
	item.ID = "srv-1"
	return item, nil
}

func (f *fakeSyncer) Delete(ctx context.Context, t content.Type, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSyncer) Bulk(ctx context.Context, t content.Type, action content.BulkAction, ids []string) error {
	f.bulkAction = action
	f.bulkIDs = append([]string(nil), ids...)
	return nil
}

func TestLoadContentDelegates(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := contentcmd.NewLoadContentHandler(syncer, nil)

	msg := contentcmd.LoadContentCommand{Types: []content.Type{content.TypeProjects}}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(syncer.loaded) != 1 || syncer.loaded[0] != content.TypeProjects {
		t.Fatalf("loaded = %v", syncer.loaded)
	}
}

func TestLoadContentRejectsUnknownType(t *testing.T) {
	handler := contentcmd.NewLoadContentHandler(&fakeSyncer{}, nil)

	msg := contentcmd.LoadContentCommand{Types: []content.Type{"bogus"}}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestSaveContentRequiresTitle(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := contentcmd.NewSaveContentHandler(syncer, nil)

	msg := contentcmd.SaveContentCommand{Draft: content.NewDraft(content.TypeProjects)}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if len(syncer.saved) != 0 {
		t.Fatal("invalid draft must not reach the syncer")
	}
}

func TestSaveContentDelegates(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := contentcmd.NewSaveContentHandler(syncer, nil)

	draft := content.NewDraft(content.TypeProjects)
	draft.Item.Title = "Shipped"
	if err := handler.Execute(context.Background(), contentcmd.SaveContentCommand{Draft: draft}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(syncer.saved) != 1 {
		t.Fatalf("saved = %d", len(syncer.saved))
	}
}

func TestSetVisibilityRequiresID(t *testing.T) {
	handler := contentcmd.NewSetVisibilityHandler(&fakeSyncer{}, nil)

	msg := contentcmd.SetVisibilityCommand{ContentType: content.TypeProjects}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestReorderRejectsNegativeIndexes(t *testing.T) {
	handler := contentcmd.NewReorderContentHandler(&fakeSyncer{}, nil)

	msg := contentcmd.ReorderContentCommand{ContentType: content.TypeProjects, FromIndex: -1}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestDeleteContentDelegates(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := contentcmd.NewDeleteContentHandler(syncer, nil)

	msg := contentcmd.DeleteContentCommand{ContentType: content.TypeProjects, ID: "p1"}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(syncer.deleted) != 1 || syncer.deleted[0] != "p1" {
		t.Fatalf("deleted = %v", syncer.deleted)
	}
}

func TestBulkContentValidatesAction(t *testing.T) {
	handler := contentcmd.NewBulkContentHandler(&fakeSyncer{}, nil)

	msg := contentcmd.BulkContentCommand{
		ContentType: content.TypeProjects,
		Action:      "archive",
		IDs:         []string{"p1"},
	}
	err := handler.Execute(context.Background(), msg)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestBulkContentDelegates(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := contentcmd.NewBulkContentHandler(syncer, nil)

	msg := contentcmd.BulkContentCommand{
		ContentType: content.TypeProjects,
		Action:      content.BulkHide,
		IDs:         []string{"p1", "p2"},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if syncer.bulkAction != content.BulkHide || len(syncer.bulkIDs) != 2 {
		t.Fatalf("bulk = %s %v", syncer.bulkAction, syncer.bulkIDs)
	}
}
