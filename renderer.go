package coursemd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"

	"github.com/alnah/go-coursemd/internal/assets"
	"github.com/alnah/go-coursemd/internal/fileutil"
	"github.com/alnah/go-coursemd/internal/pipeline"
)

// StylesheetPath is the site stylesheet URL relative to the base path.
const StylesheetPath = "static/site.css"

// defaultLessonTitle is used when a lesson has no heading, front matter
// title or catalog entry.
const defaultLessonTitle = "Lesson"

// page identifies a page template.
type page int

const (
	pageIndex page = iota
	pageCategory
	pageLesson
)

// Renderer compiles lessons and renders site pages.
// A Renderer is safe for concurrent use; build one and share it across a
// static build or every request of a server.
type Renderer struct {
	cfg          rendererConfig
	logger       *zap.Logger
	compiler     *pipeline.Compiler
	splitter     *pipeline.Splitter
	assetLoader  AssetLoader
	customLoader AssetLoader // set by WithAssetLoader
	pages        map[page]*template.Template
	stylesheet   string
}

type rendererConfig struct {
	highlightStyle string
	sanitize       bool
	assetPath      string
	style          string
	templateSet    string
	site           Site
	basePath       string
	videos         *VideoCatalog
	rewriteLinks   bool
}

// NewRenderer creates a Renderer with default configuration.
// Returns error if the highlight style is unknown or if asset loading or
// template parsing fails.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			highlightStyle: pipeline.DefaultHighlightStyle,
			style:          DefaultStyle,
			templateSet:    DefaultTemplateSet,
			site:           Site{Title: DefaultSiteTitle, Tagline: DefaultSiteTagline},
			basePath:       "/",
			rewriteLinks:   true,
		},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.highlightStyle == "" {
		r.cfg.highlightStyle = pipeline.DefaultHighlightStyle
	}
	if !slices.Contains(styles.Names(), r.cfg.highlightStyle) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, r.cfg.highlightStyle)
	}

	// WithAssetLoader wins over WithAssetPath.
	switch {
	case r.customLoader != nil:
		r.assetLoader = r.customLoader
	case r.cfg.assetPath != "":
		loader, err := NewAssetLoader(r.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		r.assetLoader = loader
	}

	if err := r.loadStylesheet(); err != nil {
		return nil, err
	}
	if err := r.loadPages(); err != nil {
		return nil, err
	}

	r.compiler = pipeline.NewCompiler(r.cfg.highlightStyle)
	if r.cfg.sanitize {
		r.compiler.Sanitizer = pipeline.SanitizePolicy()
	}
	r.splitter = pipeline.NewSplitter(r.logger)

	return r, nil
}

// loadStylesheet builds the site CSS: the named style followed by the
// chroma classes of the highlight style.
func (r *Renderer) loadStylesheet() error {
	css, err := r.assetLoader.LoadStyle(r.cfg.style)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", r.cfg.style, convertAssetError(err))
	}

	var buf bytes.Buffer
	buf.WriteString(css)
	buf.WriteString("\n/* Code highlighting: " + r.cfg.highlightStyle + " */\n")
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(r.cfg.highlightStyle)); err != nil {
		return fmt.Errorf("writing highlight CSS: %w", err)
	}

	r.stylesheet = buf.String()
	return nil
}

// loadPages parses the layout once and clones it for each page template.
func (r *Renderer) loadPages() error {
	ts, err := r.assetLoader.LoadTemplateSet(r.cfg.templateSet)
	if err != nil {
		return fmt.Errorf("loading template set %q: %w", r.cfg.templateSet, convertAssetError(err))
	}

	layout, err := template.New("page").Parse(ts.Layout)
	if err != nil {
		return fmt.Errorf("%w: layout: %v", ErrTemplateParse, err)
	}
	if layout.Lookup("layout") == nil {
		return fmt.Errorf("%w: layout does not define \"layout\"", ErrTemplateParse)
	}

	sources := []struct {
		page page
		name string
		src  string
	}{
		{pageIndex, "index", ts.Index},
		{pageCategory, "category", ts.Category},
		{pageLesson, "lesson", ts.Lesson},
	}

	r.pages = make(map[page]*template.Template, len(sources))
	for _, s := range sources {
		t, err := layout.Clone()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTemplateParse, s.name, err)
		}
		if _, err := t.Parse(s.src); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTemplateParse, s.name, err)
		}
		r.pages[s.page] = t
	}
	return nil
}

// Site returns the configured site labels.
func (r *Renderer) Site() Site {
	return r.cfg.site
}

// BasePath returns the URL prefix of every page; it starts and ends with "/".
func (r *Renderer) BasePath() string {
	return r.cfg.basePath
}

// Stylesheet returns the site CSS including the highlight classes.
func (r *Renderer) Stylesheet() string {
	return r.stylesheet
}

// Videos returns the curated video catalog, possibly nil.
func (r *Renderer) Videos() *VideoCatalog {
	return r.cfg.videos
}

// CategoryURL returns the URL of a category page.
func (r *Renderer) CategoryURL(category string) string {
	return r.cfg.basePath + category
}

// LessonURL returns the URL of a lesson page.
func (r *Renderer) LessonURL(meta LessonMeta) string {
	return r.cfg.basePath + meta.Category + "/" + meta.ID
}

// Compile converts lesson Markdown into HTML with placeholder tags and
// returns the front matter separately. Recovers from internal panics.
func (r *Renderer) Compile(ctx context.Context, markdown string) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	return r.compile(ctx, markdown)
}

func (r *Renderer) compile(ctx context.Context, markdown string) (*Document, error) {
	doc, err := r.compiler.Compile(ctx, markdown)
	if err != nil {
		if errors.Is(err, pipeline.ErrHTMLConversion) {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return nil, err
	}
	return doc, nil
}

// Split breaks compiled HTML into literal and component segments.
// Corrupt placeholders are dropped and logged.
func (r *Renderer) Split(html string) []Segment {
	return r.splitter.Split(html)
}

// StripPlaceholders removes every placeholder tag from compiled HTML.
func StripPlaceholders(html string) string {
	return pipeline.StripPlaceholders(html)
}

// RenderLesson reads a lesson from fsys, compiles it and resolves its
// title, outline, segments, navigation and videos.
// Returns ErrLessonNotFound if id is not in the catalog.
func (r *Renderer) RenderLesson(ctx context.Context, fsys fs.FS, catalog *Catalog, id string) (lesson *Lesson, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	meta, ok := catalog.Lesson(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}

	data, err := fs.ReadFile(fsys, meta.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadContent, meta.Path(), err)
	}

	doc, err := r.compile(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", meta.Path(), err)
	}

	body := doc.HTML
	if r.cfg.rewriteLinks {
		rewritten, err := pipeline.RewriteRelativeLinks(body, r.siblingResolver(catalog, meta.Category))
		if err != nil {
			r.logger.Warn("link rewrite skipped", zap.String("lesson", id), zap.Error(err))
		} else {
			body = rewritten
		}
	}

	title := pipeline.FirstH1(body)
	if title != "" {
		body = pipeline.RemoveFirstH1(body)
	} else {
		title = lessonTitle(doc.FrontMatter, meta)
	}

	prev, next := catalog.Neighbors(id)
	lesson = &Lesson{
		ID:          meta.ID,
		Category:    meta.Category,
		Slug:        meta.Slug,
		Order:       meta.Order,
		Title:       title,
		Description: pipeline.MetaString(doc.FrontMatter, "description"),
		FrontMatter: doc.FrontMatter,
		Outline:     pipeline.Outline(body),
		Segments:    r.splitter.Split(body),
		Prev:        prev,
		Next:        next,
		Videos:      r.cfg.videos.ForLesson(catalog, id),
	}

	r.logger.Debug("lesson compiled",
		zap.String("lesson", id),
		zap.Int("segments", len(lesson.Segments)),
		zap.Int("components", lesson.Components()))

	return lesson, nil
}

// lessonTitle falls back from the front matter title to the catalog title.
func lessonTitle(meta map[string]any, lesson LessonMeta) string {
	if t := pipeline.MetaString(meta, "title"); t != "" {
		return t
	}
	if lesson.Title != "" {
		return lesson.Title
	}
	return defaultLessonTitle
}

// siblingResolver maps links to lesson files of the same category
// ("02-selectors.md#ids") to lesson URLs. Other references are kept.
func (r *Renderer) siblingResolver(catalog *Catalog, category string) pipeline.LinkResolver {
	return func(ref string) (string, bool) {
		target, fragment, _ := strings.Cut(ref, "#")
		target = strings.TrimPrefix(target, "./")
		if strings.Contains(target, "/") || !fileutil.IsMarkdown(target) {
			return "", false
		}
		meta, ok := catalog.LessonByFile(category, path.Base(target))
		if !ok {
			return "", false
		}
		url := r.LessonURL(meta)
		if fragment != "" {
			url += "#" + fragment
		}
		return url, true
	}
}

// normalizeBasePath makes base start and end with "/".
func normalizeBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return "/"
	}
	return "/" + base + "/"
}
