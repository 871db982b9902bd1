package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-coursemd/internal/hints"
	"github.com/alnah/go-coursemd/internal/server"
)

// runServe serves the course over HTTP until the context is cancelled.
// Lessons are compiled per request, so edits show up on reload.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgument, positional[1])
	}

	cfg, _, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		cfg.Content.Dir = positional[0]
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
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

	router := server.NewRouter(server.Config{
		Renderer:   r,
		Content:    fsys,
		Categories: cfg.Content.Categories,
		Logger:     log,
	})

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %d lessons from %s on %s\n", catalog.Total(), cfg.Content.Dir, cfg.Server.Addr)
	}

	if err := server.New(cfg.Server.Addr, router, log).Run(ctx); err != nil {
		if errors.Is(err, server.ErrListen) {
			return fmt.Errorf("%w%s", err, hints.ForServerListen(cfg.Server.Addr))
		}
		return err
	}
	return nil
}
