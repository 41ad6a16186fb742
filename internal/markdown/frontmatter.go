package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the structured metadata an import file carries ahead of
// its markdown body. Unknown keys land in Custom and flow into the item's
// metadata untouched.
type FrontMatter struct {
	Title   string         `yaml:"title"`
	Type    string         `yaml:"type"`
	Slug    string         `yaml:"slug"`
	Status  string         `yaml:"status"`
	Visible *bool          `yaml:"visible"`
	Order   *int           `yaml:"order"`
	Summary string         `yaml:"summary"`
	Tags    []string       `yaml:"tags"`
	Custom  map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts metadata and the markdown body from the source
// bytes, returning the body without delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
