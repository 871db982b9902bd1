package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	coursemd "github.com/alnah/go-coursemd"
	"github.com/alnah/go-coursemd/internal/config"
	"github.com/alnah/go-coursemd/internal/hints"
)

// ErrUnknownProgressAction is returned for an action runProgress does not know.
var ErrUnknownProgressAction = errors.New("unknown progress action")

// progressAppDir is the folder under the user config directory holding
// the progress record when none is configured.
const progressAppDir = "go-coursemd"

// runProgress shows or updates the learner's local progress record.
func runProgress(args []string, env *Environment) error {
	f, positional, err := parseProgressFlags(args, env)
	if err != nil {
		return err
	}

	action := "status"
	if len(positional) > 0 {
		action = positional[0]
	}
	var id string
	switch action {
	case "status":
	case "complete", "uncomplete", "bookmark":
		if len(positional) < 2 {
			return fmt.Errorf("%w: progress %s needs a lesson ID", ErrMissingArgument, action)
		}
		id = positional[1]
	default:
		return fmt.Errorf("%w: %s (use status, complete, uncomplete or bookmark)", ErrUnknownProgressAction, action)
	}

	cfg, _, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if f.content != "" {
		cfg.Content.Dir = f.content
	}
	if f.dir != "" {
		cfg.Progress.Dir = f.dir
	}
	applyCommonFlags(cfg, f.common)

	log, flush, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer flush()

	_, catalog, err := loadCourse(cfg)
	if err != nil {
		return err
	}
	dir, err := progressDir(cfg)
	if err != nil {
		return err
	}
	tracker := coursemd.NewProgressTracker(coursemd.NewFileStore(dir), catalog.Total(), log)

	if action == "status" {
		return printProgress(env.Stdout, tracker, catalog)
	}

	if _, ok := catalog.Lesson(id); !ok {
		return fmt.Errorf("%w: %s%s", coursemd.ErrLessonNotFound, id, hints.ForLessonNotFound())
	}

	switch action {
	case "complete":
		if err := tracker.Complete(id); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Completed %s\n", id)
	case "uncomplete":
		if err := tracker.Uncomplete(id); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Reopened %s\n", id)
	case "bookmark":
		on, err := tracker.ToggleBookmark(id)
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(env.Stdout, "Bookmarked %s\n", id)
		} else {
			fmt.Fprintf(env.Stdout, "Removed bookmark %s\n", id)
		}
	}

	stats := tracker.Stats()
	fmt.Fprintf(env.Stdout, "%d/%d lessons, %d%%\n", stats.Completed, stats.Total, stats.Percentage)
	return nil
}

// progressDir returns the configured progress directory, or the
// go-coursemd folder of the user config directory.
func progressDir(cfg *config.Config) (string, error) {
	if cfg.Progress.Dir != "" {
		return cfg.Progress.Dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating progress directory: %w (set progress.dir or use --dir)", err)
	}
	return filepath.Join(base, progressAppDir), nil
}

// printProgress writes the summary line followed by a checklist of every lesson.
func printProgress(w io.Writer, tracker *coursemd.ProgressTracker, catalog *coursemd.Catalog) error {
	stats := tracker.Stats()
	progress := tracker.Progress()

	fmt.Fprintf(w, "Progress: %d/%d lessons (%d%%), %d bookmarked\n",
		stats.Completed, stats.Total, stats.Percentage, stats.Bookmarked)
	if progress.LastAccessedLesson != "" {
		fmt.Fprintf(w, "Last lesson: %s\n", progress.LastAccessedLesson)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range catalog.All() {
		mark := "[ ]"
		if tracker.IsCompleted(m.ID) {
			mark = "[x]"
		}
		star := ""
		if tracker.IsBookmarked(m.ID) {
			star = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, m.ID, m.Title, star)
	}
	return tw.Flush()
}
