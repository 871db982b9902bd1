package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag is returned when flags cannot be parsed.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	logMode string
	quiet   bool
	verbose bool
}

// siteFlags holds the renderer flags: stylesheet, templates, highlighting.
type siteFlags struct {
	style       string
	templateSet string
	assetPath   string
	highlight   string
	basePath    string
	videos      string
	sanitize    bool
	noSanitize  bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	site   siteFlags
	output string
	json   bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	site    siteFlags
	output  string
	workers int
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	site   siteFlags
	addr   string
}

// lessonsFlags holds all flags for the lessons command.
type lessonsFlags struct {
	common commonFlags
}

// progressFlags holds all flags for the progress command.
type progressFlags struct {
	common  commonFlags
	dir     string
	content string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logMode, "log", "", "log mode: dev, prod, quiet")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds renderer flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.templateSet, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting style (chroma name)")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix of every page")
	fs.StringVar(&f.videos, "videos", "", "curated video JSON file")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize compiled HTML")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "do not sanitize compiled HTML")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func()) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = usage
	return fs
}

// parseFlagSet parses args, keeping flag.ErrHelp intact so -h exits cleanly.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, env *Environment) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", func() { printRenderUsage(env.Stderr) })
	fs.SetOutput(env.Stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.json, "json", false, "print the compiled lesson as JSON")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, env *Environment) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", func() { printBuildUsage(env.Stderr) })
	fs.SetOutput(env.Stderr)

	fs.StringVarP(&f.output, "output", "o", "", "site output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, env *Environment) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", func() { printServeUsage(env.Stderr) })
	fs.SetOutput(env.Stderr)

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseLessonsFlags parses lessons command flags and returns positional args.
func parseLessonsFlags(args []string, env *Environment) (*lessonsFlags, []string, error) {
	f := &lessonsFlags{}
	fs := newFlagSet("lessons", func() { printLessonsUsage(env.Stderr) })
	fs.SetOutput(env.Stderr)

	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseProgressFlags parses progress command flags and returns positional args.
func parseProgressFlags(args []string, env *Environment) (*progressFlags, []string, error) {
	f := &progressFlags{}
	fs := newFlagSet("progress", func() { printProgressUsage(env.Stderr) })
	fs.SetOutput(env.Stderr)

	fs.StringVar(&f.dir, "dir", "", "progress directory")
	fs.StringVar(&f.content, "content", "", "content directory")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
