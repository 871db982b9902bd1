package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// TemplateSet holds the HTML templates for site pages.
// Each page template defines a "content" block rendered inside the layout.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Layout   string // Page shell: head, navigation, scripts
	Index    string // Course overview
	Category string // Lesson list of one category
	Lesson   string // Lesson body, outline, navigation and videos
}

// templateFiles lists the files a template set directory must contain.
var templateFiles = []string{"layout.html", "index.html", "category.html", "lesson.html"}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// readTemplateSet reads every page template through read. A set with none of
// the pages does not exist; a set with only some of them is incomplete.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	files := make(map[string]string, len(templateFiles))
	var missing []string
	for _, file := range templateFiles {
		content, err := read(file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, file)
		case err != nil:
			return nil, fmt.Errorf("%w: reading %s: %w", ErrAssetRead, file, err)
		default:
			files[file] = string(content)
		}
	}

	switch len(missing) {
	case 0:
		return newTemplateSet(name, files), nil
	case len(templateFiles):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}
}

func newTemplateSet(name string, files map[string]string) *TemplateSet {
	return &TemplateSet{
		Name:     name,
		Layout:   files["layout.html"],
		Index:    files["index.html"],
		Category: files["category.html"],
		Lesson:   files["lesson.html"],
	}
}
