package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	coursemd "github.com/alnah/go-coursemd"
)

// runLessons lists the lesson IDs of every category.
func runLessons(args []string, env *Environment) error {
	f, positional, err := parseLessonsFlags(args, env)
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
	applyCommonFlags(cfg, f.common)

	_, catalog, err := loadCourse(cfg)
	if err != nil {
		return err
	}
	return printCatalog(env.Stdout, catalog)
}

// printCatalog writes one block per category: a heading, then an aligned
// "ID  Title  File" row per lesson.
func printCatalog(w io.Writer, catalog *coursemd.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, category := range catalog.Categories() {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		lessons, _ := catalog.Lessons(category)
		fmt.Fprintf(tw, "%s (%d)\n", coursemd.CategoryTitle(category), len(lessons))
		for _, m := range lessons {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.ID, m.Title, m.Filename)
		}
	}
	fmt.Fprintf(tw, "\n%d lessons\n", catalog.Total())
	return tw.Flush()
}
