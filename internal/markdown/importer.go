package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/identity"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// ErrNoContentDir signals an import against a directory that does not exist.
var ErrNoContentDir = errors.New("markdown: content directory not found")

// Import is one parsed file staged for review: the draft to save through
// the normal sync path, plus a rendered HTML preview of the body. The
// SourceRef identifies the originating file so repeat imports of the same
// path can be correlated even after the file's content changes.
type Import struct {
	SourcePath  string
	SourceRef   uuid.UUID
	Slug        string
	Draft       content.Draft
	PreviewHTML string
}

// Importer turns markdown files into content drafts. It never touches the
// cache or the backend; callers stage the drafts and save them through the
// sync engine.
type Importer struct {
	renderer   *Renderer
	logger     interfaces.Logger
	contentDir string
}

// ImporterOption configures the importer.
type ImporterOption func(*Importer)

// WithLogger injects the markdown logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithContentDir sets the directory ImportDir falls back to when callers
// pass an empty path.
func WithContentDir(dir string) ImporterOption {
	return func(i *Importer) {
		i.contentDir = strings.TrimSpace(dir)
	}
}

// NewImporter builds an importer with a shared goldmark renderer.
func NewImporter(opts ...ImporterOption) *Importer {
	i := &Importer{
		renderer: NewRenderer(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// ImportDir parses every .md file directly under dir, sorted by file name
// so import order is stable. An empty dir falls back to the configured
// content directory. Files that fail to parse abort the import.
func (i *Importer) ImportDir(dir string) ([]Import, error) {
	if strings.TrimSpace(dir) == "" {
		dir = i.contentDir
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: no directory configured", ErrNoContentDir)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoContentDir, dir)
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	imports := make([]Import, 0, len(names))
	for _, name := range names {
		imported, err := i.ImportFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		imports = append(imports, imported)
	}
	i.logger.Info("markdown.import.done", "dir", dir, "files", len(imports))
	return imports, nil
}

// ImportFile parses a single markdown file into a staged draft.
func (i *Importer) ImportFile(path string) (Import, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Import{}, err
	}

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return Import{}, fmt.Errorf("%s: %w", path, err)
	}

	contentType, err := content.ParseType(meta.Type)
	if err != nil {
		return Import{}, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(meta.Title) == "" {
		return Import{}, fmt.Errorf("%s: markdown: title is required", path)
	}

	status := content.Status(meta.Status)
	if !status.Valid() || (status != "" && !contentType.SupportsStatus()) {
		return Import{}, fmt.Errorf("%s: markdown: status %q not valid for %s", path, meta.Status, contentType)
	}

	itemSlug := strings.TrimSpace(meta.Slug)
	if itemSlug == "" {
		itemSlug, err = slug.Normalize(meta.Title)
		if err != nil {
			return Import{}, fmt.Errorf("%s: markdown: derive slug: %w", path, err)
		}
	}

	preview, err := i.renderer.Render(body)
	if err != nil {
		return Import{}, fmt.Errorf("%s: %w", path, err)
	}

	item := content.Item{
		Title:       meta.Title,
		Type:        contentType,
		Visible:     meta.Visible == nil || *meta.Visible,
		Status:      status,
		Description: meta.Summary,
		Content:     strings.TrimSpace(string(body)),
	}
	if meta.Order != nil {
		item.Order = *meta.Order
	}

	metadata := make(map[string]any, len(meta.Custom)+2)
	for key, value := range meta.Custom {
		metadata[key] = value
	}
	metadata["slug"] = itemSlug
	if len(meta.Tags) > 0 {
		metadata["tags"] = append([]string(nil), meta.Tags...)
	}
	item.Metadata = metadata

	draft := content.Draft{
		ClientRef: identity.DraftUUID(string(contentType), itemSlug),
		Item:      item,
	}

	i.logger.Debug("markdown.import.file", "path", path, "type", contentType, "slug", itemSlug)
	return Import{
		SourcePath:  path,
		SourceRef:   identity.SourceUUID(path),
		Slug:        itemSlug,
		Draft:       draft,
		PreviewHTML: preview,
	}, nil
}
