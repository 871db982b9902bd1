package coursemd

import "go.uber.org/zap"

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHighlightStyle sets the chroma style for code blocks and the site
// stylesheet (e.g. "github", "monokai").
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = name
	}
}

// WithSanitize runs compiled lesson HTML through an HTML sanitizer.
// Use it when lesson authors are not trusted.
func WithSanitize(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.sanitize = enabled
	}
}

// WithAssetPath sets a directory of custom styles and templates.
// Assets missing there fall back to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.customLoader = loader
	}
}

// WithStyle sets the site stylesheet by name.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.style = name
	}
}

// WithTemplateSet sets the page template set by name.
func WithTemplateSet(name string) Option {
	return func(r *Renderer) {
		r.cfg.templateSet = name
	}
}

// WithSite sets the site labels. An empty title keeps the default.
func WithSite(site Site) Option {
	return func(r *Renderer) {
		if site.Title != "" {
			r.cfg.site = site
		}
	}
}

// WithBasePath sets the URL prefix of every page, e.g. "/courses/web/".
func WithBasePath(base string) Option {
	return func(r *Renderer) {
		r.cfg.basePath = normalizeBasePath(base)
	}
}

// WithVideos sets the curated videos shown after the last lesson of each category.
func WithVideos(videos *VideoCatalog) Option {
	return func(r *Renderer) {
		r.cfg.videos = videos
	}
}

// WithLinkRewrite controls whether links to sibling lesson files
// ("02-selectors.md") are rewritten to lesson URLs. Enabled by default.
func WithLinkRewrite(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.rewriteLinks = enabled
	}
}
