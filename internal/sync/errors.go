package sync

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-portfolio/internal/content"
)

var (
	// ErrUnknownItem signals a mutation aimed at an id that is not in the
	// cache for the given type.
	ErrUnknownItem = errors.New("sync: item not in cache")
	// ErrStaleView marks a reorder failure where the recovery fetch also
	// failed, leaving the optimistic list on screen.
	ErrStaleView = errors.New("sync: local view may be stale")
	// ErrInvalidBulkAction rejects bulk actions outside show, hide, delete.
	ErrInvalidBulkAction = errors.New("sync: invalid bulk action")
)

// PartialLoadError reports the content types whose initial fetch failed.
// Types that loaded keep their cached lists; the caller can render them and
// offer a retry for the rest.
type PartialLoadError struct {
	Failures map[content.Type]error
}

func (e *PartialLoadError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for t := range e.Failures {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return fmt.Sprintf("sync: failed to load %s", strings.Join(names, ", "))
}

// Failed returns the failed types in display order.
func (e *PartialLoadError) Failed() []content.Type {
	out := make([]content.Type, 0, len(e.Failures))
	for _, t := range content.AllTypes() {
		if _, ok := e.Failures[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
