package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	coursemd "github.com/alnah/go-coursemd"
	"github.com/alnah/go-coursemd/internal/fileutil"
	"github.com/alnah/go-coursemd/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for command arguments and output.
var (
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrInvalidExtension   = errors.New("lesson files must have a .md extension")
	ErrReadLesson         = errors.New("failed to read lesson file")
	ErrWriteOutput        = errors.New("failed to write output")
)

// runRender compiles one lesson file to a page, or to JSON with --json.
// The lesson's parent directory is taken as its category, so links to
// sibling lessons and prev/next navigation still resolve.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env)
	if err != nil {
		return err
	}
	switch {
	case len(positional) == 0:
		return fmt.Errorf("%w: render needs a lesson file", ErrMissingArgument)
	case len(positional) > 1:
		return fmt.Errorf("%w: %s", ErrUnexpectedArgument, positional[1])
	}

	path := positional[0]
	if filepath.Ext(path) != ".md" {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadLesson, path, err)
	}
	if !fileutil.FileExists(abs) {
		return fmt.Errorf("%w: %s: %w", ErrReadLesson, path, os.ErrNotExist)
	}

	cfg, _, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	applyCommonFlags(cfg, f.common)
	applySiteFlags(cfg, f.site)

	log, flush, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer flush()

	r, err := newRenderer(cfg, log)
	if err != nil {
		return err
	}

	category := filepath.Base(filepath.Dir(abs))
	fsys := os.DirFS(filepath.Dir(filepath.Dir(abs)))
	catalog, err := coursemd.LoadCatalog(fsys, []string{category})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadLesson, err)
	}
	meta, ok := catalog.LessonByFile(category, filepath.Base(abs))
	if !ok {
		return fmt.Errorf("%w: %s", coursemd.ErrLessonNotFound, path)
	}

	lesson, err := r.RenderLesson(ctx, fsys, catalog, meta.ID)
	if err != nil {
		return err
	}

	var out []byte
	if f.json {
		out, err = json.MarshalIndent(lesson, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = r.RenderPage(catalog, lesson)
	}
	if err != nil {
		return err
	}

	if err := writeOutput(env, f.output, out); err != nil {
		return err
	}
	if f.output != "" && !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", f.output)
	}
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(env *Environment, path string, data []byte) error {
	if path == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	return writePageFile(path, data)
}

// writePageFile creates path's parent directories and writes data atomically.
func writePageFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, filepath.Dir(path), err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
