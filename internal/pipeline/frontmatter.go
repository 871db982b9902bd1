package pipeline

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"

	"github.com/alnah/go-coursemd/internal/yamlutil"
)

// frontMatterFormats lists the accepted header delimiters.
// YAML decodes through yamlutil so config and lessons share one parser.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yamlutil.UnmarshalHeader),
	frontmatter.NewFormat("+++", "+++", unmarshalTOMLHeader),
}

// FrontMatterSplitter defines the contract for front matter extraction.
type FrontMatterSplitter interface {
	SplitFrontMatter(content string) (body string, meta map[string]any)
}

// HeaderSplitter splits a leading YAML or TOML header from Markdown.
type HeaderSplitter struct{}

// SplitFrontMatter returns the body and the parsed header.
// A malformed header leaves the whole input as body with an empty map.
func (s *HeaderSplitter) SplitFrontMatter(content string) (string, map[string]any) {
	meta := map[string]any{}
	if !hasHeader(content) {
		return content, meta
	}

	rest, err := frontmatter.Parse(strings.NewReader(content), &meta, frontMatterFormats...)
	if err != nil {
		return content, map[string]any{}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return string(rest), meta
}

// hasHeader reports whether content opens with a known delimiter line,
// so plain documents are never touched by the header parser.
func hasHeader(content string) bool {
	first, _, _ := strings.Cut(strings.TrimPrefix(content, "\uFEFF"), "\n")
	first = strings.TrimSpace(first)
	return first == "---" || first == "+++"
}

func unmarshalTOMLHeader(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return toml.Unmarshal(data, v)
}

// MetaString returns a string value from front matter, or "".
func MetaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
