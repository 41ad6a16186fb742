package contentcmd

import (
	"context"

	"github.com/goliatone/go-portfolio/internal/content"
)

// Syncer is the slice of the sync engine the content commands drive.
type Syncer interface {
	LoadAll(ctx context.Context, types ...content.Type) error
	SetVisibility(ctx context.Context, t content.Type, id string, visible bool) error
	Reorder(ctx context.Context, t content.Type, fromIndex, toIndex int) error
	Save(ctx context.Context, draft content.Draft) (content.Item, error)
	Delete(ctx context.Context, t content.Type, id string) error
	Bulk(ctx context.Context, t content.Type, action content.BulkAction, ids []string) error
}
