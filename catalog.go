package coursemd

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCategories is the category order used when none is given.
var DefaultCategories = []string{"html", "css", "javascript"}

// lessonFilePattern matches "<NN>-<slug>.md".
var lessonFilePattern = regexp.MustCompile(`^(\d+)-(.+)\.md$`)

// LessonMeta describes one lesson file of the course.
type LessonMeta struct {
	ID       string `json:"id"`       // "<category>-<slug>"
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Title    string `json:"title"` // Slug in title case
	Order    int    `json:"order"` // Numeric filename prefix, 0 when absent
	Filename string `json:"filename"`
}

// Path returns the lesson file path relative to the content root.
func (m LessonMeta) Path() string {
	return path.Join(m.Category, m.Filename)
}

// Catalog lists the lessons of a course, grouped by category in display order.
// A Catalog is immutable after LoadCatalog and safe for concurrent use.
type Catalog struct {
	categories []string
	lessons    map[string][]LessonMeta
	index      map[string]position
}

type position struct {
	category string
	i        int
}

// LoadCatalog scans fsys for "<category>/<file>.md" lessons.
// Categories whose directory is missing have no lessons. Files are sorted by
// name. When two files map to the same ID, the first one wins.
func LoadCatalog(fsys fs.FS, categories []string) (*Catalog, error) {
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	c := &Catalog{
		categories: append([]string(nil), categories...),
		lessons:    make(map[string][]LessonMeta, len(categories)),
		index:      make(map[string]position),
	}

	for _, category := range c.categories {
		entries, err := fs.ReadDir(fsys, category)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.lessons[category] = nil
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrReadContent, category, err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)

		var list []LessonMeta
		for _, name := range names {
			meta := parseLessonFilename(category, name)
			if _, dup := c.index[meta.ID]; dup {
				continue
			}
			c.index[meta.ID] = position{category: category, i: len(list)}
			list = append(list, meta)
		}
		c.lessons[category] = list
	}

	return c, nil
}

// parseLessonFilename derives lesson metadata from its file name.
func parseLessonFilename(category, filename string) LessonMeta {
	order := 0
	slug := strings.TrimSuffix(filename, ".md")
	if m := lessonFilePattern.FindStringSubmatch(filename); m != nil {
		order, _ = strconv.Atoi(m[1])
		slug = m[2]
	}
	return LessonMeta{
		ID:       category + "-" + slug,
		Category: category,
		Slug:     slug,
		Title:    TitleFromSlug(slug),
		Order:    order,
		Filename: filename,
	}
}

// TitleFromSlug capitalizes each hyphen-separated word: "box-model" -> "Box Model".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// HasCategory reports whether category is part of the course.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.lessons[category]
	return ok
}

// Lessons returns the lessons of a category in order.
// Returns ErrCategoryNotFound for a category that is not part of the course.
func (c *Catalog) Lessons(category string) ([]LessonMeta, error) {
	list, ok := c.lessons[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	return append([]LessonMeta(nil), list...), nil
}

// All returns every lesson, category by category.
func (c *Catalog) All() []LessonMeta {
	all := make([]LessonMeta, 0, c.Total())
	for _, category := range c.categories {
		all = append(all, c.lessons[category]...)
	}
	return all
}

// Lesson looks a lesson up by ID.
func (c *Catalog) Lesson(id string) (LessonMeta, bool) {
	p, ok := c.index[id]
	if !ok {
		return LessonMeta{}, false
	}
	return c.lessons[p.category][p.i], true
}

// Neighbors returns the previous and next lessons within the lesson's
// category. Either is nil at the category boundaries or for an unknown ID.
func (c *Catalog) Neighbors(id string) (prev, next *LessonMeta) {
	p, ok := c.index[id]
	if !ok {
		return nil, nil
	}
	list := c.lessons[p.category]
	if p.i > 0 {
		m := list[p.i-1]
		prev = &m
	}
	if p.i < len(list)-1 {
		m := list[p.i+1]
		next = &m
	}
	return prev, next
}

// IsLast reports whether id is the final lesson of its category.
func (c *Catalog) IsLast(id string) bool {
	p, ok := c.index[id]
	return ok && p.i == len(c.lessons[p.category])-1
}

// Total returns the number of lessons in the course.
func (c *Catalog) Total() int {
	return len(c.index)
}

// LessonByFile looks a lesson up by its category and file name.
func (c *Catalog) LessonByFile(category, filename string) (LessonMeta, bool) {
	for _, m := range c.lessons[category] {
		if m.Filename == filename {
			return m, true
		}
	}
	return LessonMeta{}, false
}

// categoryTitles spells the default categories the way learners expect.
var categoryTitles = map[string]string{
	"html":       "HTML",
	"css":        "CSS",
	"javascript": "JavaScript",
}

// CategoryTitle returns the display name of a category.
func CategoryTitle(category string) string {
	if t, ok := categoryTitles[category]; ok {
		return t
	}
	return TitleFromSlug(category)
}
