package pipeline

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// Document is a compiled lesson body.
type Document struct {
	HTML        string
	FrontMatter map[string]any
}

// Compiler wires the Markdown stages together:
// preprocess, split front matter, extract directives, convert, sanitize.
type Compiler struct {
	Preprocessor  MarkdownPreprocessor
	FrontMatter   FrontMatterSplitter
	Extractor     DirectiveExtractor
	HTMLConverter HTMLConverter

	// Sanitizer is applied to the converted HTML when non-nil.
	Sanitizer *bluemonday.Policy
}

// NewCompiler returns a Compiler with the default stages.
func NewCompiler(highlightStyle string) *Compiler {
	return &Compiler{
		Preprocessor:  &LessonPreprocessor{},
		FrontMatter:   &HeaderSplitter{},
		Extractor:     &FencedDirectiveExtractor{},
		HTMLConverter: NewGoldmarkConverter(highlightStyle),
	}
}

// Compile converts lesson Markdown into HTML with placeholder tags and
// returns the front matter separately. Only cancellation and internal
// converter failures produce an error.
func (c *Compiler) Compile(ctx context.Context, markdown string) (*Document, error) {
	content := c.Preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, meta := c.FrontMatter.SplitFrontMatter(content)
	body = c.Extractor.ExtractDirectives(body)

	htmlContent, err := c.HTMLConverter.ToHTML(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if c.Sanitizer != nil {
		htmlContent = c.Sanitizer.Sanitize(htmlContent)
	}

	return &Document{HTML: htmlContent, FrontMatter: meta}, nil
}

// SanitizePolicy returns a user-content policy that keeps everything the
// compiler emits: placeholder tags, code block chrome, chroma classes and
// heading anchors.
func SanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").Globally()
	p.AllowElements("button")
	p.AllowAttrs("type", "aria-label").OnElements("button")
	return p
}
