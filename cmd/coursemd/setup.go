package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	coursemd "github.com/alnah/go-coursemd"
	"github.com/alnah/go-coursemd/internal/config"
	"github.com/alnah/go-coursemd/internal/fileutil"
	"github.com/alnah/go-coursemd/internal/hints"
	"github.com/alnah/go-coursemd/internal/logger"
)

// ErrContentDir is returned when the content directory is missing.
var ErrContentDir = errors.New("content directory not found")

// loadConfig resolves the configuration: --config, else COURSEMD_CONFIG,
// else defaults. Environment overrides are applied on top; callers merge
// flags last.
func loadConfig(flagConfig string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.getenv)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// applyCommonFlags merges flags shared by every command into cfg.
func applyCommonFlags(cfg *config.Config, f commonFlags) {
	switch {
	case f.logMode != "":
		cfg.Log.Mode = f.logMode
	case f.quiet:
		cfg.Log.Mode = logger.ModeQuiet
	}
}

// applySiteFlags merges renderer flags into cfg.
func applySiteFlags(cfg *config.Config, f siteFlags) {
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.templateSet != "" {
		cfg.Assets.TemplateSet = f.templateSet
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.highlight != "" {
		cfg.Highlight.Style = f.highlight
	}
	if f.basePath != "" {
		cfg.Site.BasePath = f.basePath
	}
	if f.videos != "" {
		cfg.Content.Videos = f.videos
	}
	if f.sanitize {
		cfg.Sanitize = true
	}
	if f.noSanitize {
		cfg.Sanitize = false
	}
}

// newLogger returns env.Logger when set, otherwise a logger for the
// configured mode. The returned func flushes it.
func newLogger(env *Environment, cfg *config.Config) (*zap.Logger, func(), error) {
	if !logger.IsValidMode(cfg.Log.Mode) {
		return nil, nil, fmt.Errorf("%w: %q (use dev, prod or quiet)", logger.ErrUnknownMode, cfg.Log.Mode)
	}
	if env.Logger != nil {
		return env.Logger, func() {}, nil
	}
	l, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { logger.Sync(l) }, nil
}

// newRenderer builds a Renderer from cfg, loading the video catalog if one
// is configured.
func newRenderer(cfg *config.Config, log *zap.Logger) (*coursemd.Renderer, error) {
	opts := []coursemd.Option{
		coursemd.WithLogger(log),
		coursemd.WithHighlightStyle(cfg.Highlight.Style),
		coursemd.WithSanitize(cfg.Sanitize),
		coursemd.WithStyle(cfg.Style),
		coursemd.WithTemplateSet(cfg.Assets.TemplateSet),
		coursemd.WithSite(coursemd.Site{Title: cfg.Site.Title, Tagline: cfg.Site.Tagline}),
		coursemd.WithBasePath(cfg.Site.BasePath),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, coursemd.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Content.Videos != "" {
		videos := coursemd.LoadVideoCatalog(cfg.Content.Videos, log)
		if videos.Len() == 0 {
			log.Warn("no curated videos loaded"+hints.ForVideoCatalog(), zap.String("path", cfg.Content.Videos))
		}
		opts = append(opts, coursemd.WithVideos(videos))
	}

	r, err := coursemd.NewRenderer(opts...)
	if err != nil {
		switch {
		case errors.Is(err, coursemd.ErrStyleNotFound):
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(coursemd.AvailableStyles(cfg.Assets.BasePath)))
		case errors.Is(err, coursemd.ErrTemplateSetNotFound), errors.Is(err, coursemd.ErrIncompleteTemplateSet):
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateSet())
		}
		return nil, err
	}
	return r, nil
}

// openContent returns the content directory as an fs.FS.
func openContent(cfg *config.Config) (fs.FS, error) {
	if !fileutil.DirExists(cfg.Content.Dir) {
		return nil, fmt.Errorf("%w: %s%s", ErrContentDir, cfg.Content.Dir, hints.ForContentDir(cfg.Content.Categories))
	}
	return os.DirFS(cfg.Content.Dir), nil
}

// loadCourse opens the content directory and scans its catalog.
func loadCourse(cfg *config.Config) (fs.FS, *coursemd.Catalog, error) {
	fsys, err := openContent(cfg)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := coursemd.LoadCatalog(fsys, cfg.Content.Categories)
	if err != nil {
		return nil, nil, err
	}
	return fsys, catalog, nil
}
