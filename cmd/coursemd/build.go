package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	coursemd "github.com/alnah/go-coursemd"
)

// Sentinel errors for the build command.
var (
	ErrInvalidWorkerCount = errors.New("worker count must not be negative")
	ErrBuildFailed        = errors.New("some pages failed to build")
)

// sitePage is one file of the static site.
type sitePage struct {
	path   string // Relative to the output directory
	render func(ctx context.Context) ([]byte, error)
}

// BuildResult holds the outcome of writing one page.
type BuildResult struct {
	Path     string
	Err      error
	Duration time.Duration
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// runBuild renders the whole course to a static site directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgument, positional[1])
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, f.workers)
	}

	cfg, envCfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		cfg.Content.Dir = positional[0]
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	workers := envCfg.Workers
	if f.workers > 0 {
		workers = f.workers
	}
	applyCommonFlags(cfg, f.common)
	applySiteFlags(cfg, f.site)

	log, flush, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer flush()

	fsys, catalog, err := loadCourse(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg, log)
	if err != nil {
		return err
	}

	start := env.Now()
	pages := sitePages(r, fsys, catalog)
	results := buildSite(ctx, pages, cfg.Output.Dir, coursemd.ResolveWorkers(workers))
	failed := printResults(results, f.common.quiet, f.common.verbose, env)

	log.Info("site built",
		zap.String("output", cfg.Output.Dir),
		zap.Int("lessons", catalog.Total()),
		zap.Int("pages", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", env.Now().Sub(start)))

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBuildFailed, failed, len(results))
	}
	return nil
}

// sitePages lists every file of the site: the index, the stylesheet, one
// page per category and one per lesson at <category>/<lesson-id>/index.html.
func sitePages(r *coursemd.Renderer, fsys fs.FS, catalog *coursemd.Catalog) []sitePage {
	pages := []sitePage{
		{path: "index.html", render: func(context.Context) ([]byte, error) {
			return r.RenderIndex(catalog)
		}},
		{path: filepath.FromSlash(coursemd.StylesheetPath), render: func(context.Context) ([]byte, error) {
			return []byte(r.Stylesheet()), nil
		}},
	}

	for _, category := range catalog.Categories() {
		pages = append(pages, sitePage{
			path: filepath.Join(category, "index.html"),
			render: func(context.Context) ([]byte, error) {
				return r.RenderCategory(catalog, category)
			},
		})

		lessons, _ := catalog.Lessons(category)
		for _, meta := range lessons {
			pages = append(pages, sitePage{
				path: filepath.Join(category, meta.ID, "index.html"),
				render: func(ctx context.Context) ([]byte, error) {
					lesson, err := r.RenderLesson(ctx, fsys, catalog, meta.ID)
					if err != nil {
						return nil, err
					}
					return r.RenderPage(catalog, lesson)
				},
			})
		}
	}
	return pages
}

// buildSite writes pages under outDir with at most workers in flight.
// A failed page does not stop the others.
func buildSite(ctx context.Context, pages []sitePage, outDir string, workers int) []BuildResult {
	if len(pages) == 0 {
		return nil
	}

	results := make([]BuildResult, len(pages))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range pages {
		g.Go(func() error {
			results[i] = buildPage(ctx, p, outDir)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// buildPage renders and writes a single page.
func buildPage(ctx context.Context, p sitePage, outDir string) BuildResult {
	start := time.Now()
	target := filepath.Join(outDir, p.path)

	if err := ctx.Err(); err != nil {
		return BuildResult{Path: target, Err: err}
	}

	data, err := p.render(ctx)
	if err == nil {
		err = writePageFile(target, data)
	}
	return BuildResult{Path: target, Err: err, Duration: time.Since(start)}
}

// countResults tallies succeeded and failed pages.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results and returns the failure count.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "Created %s (%v)\n", r.Path, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Path)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
