package coursemd

// Notes:
// - Content trees are fstest.MapFS values; no files touch the disk
// - Read failures other than a missing category use a failing fs.FS

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func testCourse() fstest.MapFS {
	return fstest.MapFS{
		"html/01-introduction.md":  {Data: []byte("# Introduction\n\nWelcome.\n")},
		"html/02-semantic-tags.md": {Data: []byte("# Semantic Tags\n")},
		"css/01-selectors.md":      {Data: []byte("---\ntitle: Selectors\ndescription: Pick elements.\n---\nNo heading here.\n")},
		"css/02-box-model.md":      {Data: []byte("# The Box Model\n\nSee [selectors](01-selectors.md#ids).\n")},
		"css/notes.txt":            {Data: []byte("ignored")},
		"css/drafts/01-wip.md":     {Data: []byte("# WIP")},
	}
}

func mustCatalog(t *testing.T, fsys fs.FS) *Catalog {
	t.Helper()
	c, err := LoadCatalog(fsys, DefaultCategories)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestLoadCatalog
// ---------------------------------------------------------------------------

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t, testCourse())

	if diff := cmp.Diff(DefaultCategories, c.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}

	css, err := c.Lessons("css")
	if err != nil {
		t.Fatalf("Lessons(css) error = %v", err)
	}
	want := []LessonMeta{
		{ID: "css-selectors", Category: "css", Slug: "selectors", Title: "Selectors", Order: 1, Filename: "01-selectors.md"},
		{ID: "css-box-model", Category: "css", Slug: "box-model", Title: "Box Model", Order: 2, Filename: "02-box-model.md"},
	}
	if diff := cmp.Diff(want, css); diff != "" {
		t.Errorf("Lessons(css) mismatch (-want +got):\n%s", diff)
	}

	js, err := c.Lessons("javascript")
	if err != nil {
		t.Fatalf("Lessons(javascript) error = %v", err)
	}
	if len(js) != 0 {
		t.Errorf("missing category dir should have no lessons, got %v", js)
	}

	if c.Total() != 4 {
		t.Errorf("Total() = %d, want 4", c.Total())
	}
}

func TestLoadCatalog_EmptyCategoriesUseDefaults(t *testing.T) {
	t.Parallel()

	c, err := LoadCatalog(fstest.MapFS{}, nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if diff := cmp.Diff(DefaultCategories, c.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalog_SortsByFilename(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"html/10-forms.md":  {Data: []byte("x")},
		"html/02-links.md":  {Data: []byte("x")},
		"html/01-basics.md": {Data: []byte("x")},
		"html/appendix.md":  {Data: []byte("x")},
		"html/03-links.md":  {Data: []byte("duplicate slug")},
		"html/04-tables.MD": {Data: []byte("wrong case extension")},
		"html/05-lists.mdx": {Data: []byte("not markdown")},
	}
	c := mustCatalog(t, fsys)
	lessons, _ := c.Lessons("html")

	var got []string
	for _, m := range lessons {
		got = append(got, m.Filename)
	}
	want := []string{"01-basics.md", "02-links.md", "10-forms.md", "appendix.md"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lesson files mismatch (-want +got):\n%s", diff)
	}

	appendix, ok := c.Lesson("html-appendix")
	if !ok {
		t.Fatal("Lesson(html-appendix) not found")
	}
	if appendix.Order != 0 || appendix.Title != "Appendix" {
		t.Errorf("unprefixed file = %+v, want order 0 and title Appendix", appendix)
	}
}

type failingFS struct{ err error }

func (f failingFS) Open(string) (fs.File, error) { return nil, f.err }

func TestLoadCatalog_ReadError(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalog(failingFS{err: fs.ErrPermission}, []string{"html"})
	if !errors.Is(err, ErrReadContent) {
		t.Errorf("LoadCatalog() error = %v, want ErrReadContent", err)
	}
}

// ---------------------------------------------------------------------------
// TestCatalog lookups
// ---------------------------------------------------------------------------

func TestCatalog_Lessons_UnknownCategory(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t, testCourse())
	if _, err := c.Lessons("python"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Lessons(python) error = %v, want ErrCategoryNotFound", err)
	}
	if c.HasCategory("python") {
		t.Error("HasCategory(python) = true, want false")
	}
	if !c.HasCategory("javascript") {
		t.Error("configured category without a directory should still exist")
	}
}

func TestCatalog_Lessons_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t, testCourse())
	list, _ := c.Lessons("css")
	list[0].Title = "mutated"

	again, _ := c.Lessons("css")
	if again[0].Title != "Selectors" {
		t.Errorf("catalog mutated through returned slice: %q", again[0].Title)
	}
}

func TestCatalog_Neighbors(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t, testCourse())

	tests := []struct {
		name     string
		id       string
		wantPrev string
		wantNext string
		wantLast bool
	}{
		{"first of category", "html-introduction", "", "html-semantic-tags", false},
		{"last of category", "html-semantic-tags", "html-introduction", "", true},
		{"no crossing into next category", "css-selectors", "", "css-box-model", false},
		{"unknown", "html-nope", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prev, next := c.Neighbors(tt.id)
			if got := idOf(prev); got != tt.wantPrev {
				t.Errorf("prev = %q, want %q", got, tt.wantPrev)
			}
			if got := idOf(next); got != tt.wantNext {
				t.Errorf("next = %q, want %q", got, tt.wantNext)
			}
			if got := c.IsLast(tt.id); got != tt.wantLast {
				t.Errorf("IsLast() = %v, want %v", got, tt.wantLast)
			}
		})
	}
}

func idOf(m *LessonMeta) string {
	if m == nil {
		return ""
	}
	return m.ID
}

func TestCatalog_All(t *testing.T) {
	t.Parallel()

	var got []string
	for _, m := range mustCatalog(t, testCourse()).All() {
		got = append(got, m.ID)
	}
	want := []string{"html-introduction", "html-semantic-tags", "css-selectors", "css-box-model"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_LessonByFile(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t, testCourse())
	if m, ok := c.LessonByFile("css", "02-box-model.md"); !ok || m.ID != "css-box-model" {
		t.Errorf("LessonByFile() = %+v, %v", m, ok)
	}
	if _, ok := c.LessonByFile("html", "02-box-model.md"); ok {
		t.Error("LessonByFile() should not match another category")
	}
}

// ---------------------------------------------------------------------------
// TestTitleFromSlug
// ---------------------------------------------------------------------------

func TestTitleFromSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug string
		want string
	}{
		{"box-model", "Box Model"},
		{"introduction", "Introduction"},
		{"flexbox-and-grid", "Flexbox And Grid"},
		{"dom", "Dom"},
		{"already-Upper", "Already Upper"},
		{"", ""},
		{"élan-vital", "Élan Vital"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()
			if got := TitleFromSlug(tt.slug); got != tt.want {
				t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"html":       "HTML",
		"css":        "CSS",
		"javascript": "JavaScript",
		"web-apis":   "Web Apis",
	}
	for in, want := range tests {
		if got := CategoryTitle(in); got != want {
			t.Errorf("CategoryTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
