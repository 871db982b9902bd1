// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-coursemd/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForServerListen returns hints for errors binding the HTTP listener.
// In a container, a loopback address is unreachable from the host.
func ForServerListen(addr string) string {
	var hints []string

	hints = append(hints, "pick another address with --addr or COURSEMD_ADDR")

	loopback := strings.HasPrefix(addr, "127.0.0.1") || strings.HasPrefix(addr, "localhost")
	if loopback && (IsInContainer() || os.Getenv("KUBERNETES_SERVICE_HOST") != "") {
		hints = append(hints, "listen on :8080 to reach the server from outside the container")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-coursemd/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-coursemd) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-coursemd") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentDir returns hints for a missing or unreadable content directory.
func ForContentDir(categories []string) string {
	if len(categories) == 0 {
		return format("pass the content directory as an argument or set COURSEMD_CONTENT_DIR")
	}
	return format("expected one folder per category (" + strings.Join(categories, ", ") + ") holding NN-slug.md files")
}

// ForLessonNotFound returns a hint pointing at the lessons command.
func ForLessonNotFound() string {
	return format("run 'coursemd lessons' to list lesson IDs")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateSet returns hints for incomplete or missing template sets.
func ForTemplateSet() string {
	return format("a template set directory needs layout.html, index.html, category.html and lesson.html")
}

// ForVideoCatalog returns hints for an unreadable video catalog.
func ForVideoCatalog() string {
	return format(`expected a JSON object keyed by category, e.g. {"html": [{"id": "...", "youtubeId": "..."}]}`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
