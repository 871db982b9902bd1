package coursemd

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/go-coursemd/internal/pipeline"
)

// pageData is the data contract of the page templates.
type pageData struct {
	Site       Site
	Base       string
	Title      string
	Categories []categoryView
	Category   *categoryView
	Lesson     *lessonView
}

type categoryView struct {
	Name    string
	Title   string
	URL     string
	Lessons []linkView
}

type linkView struct {
	ID    string
	Title string
	URL   string
}

type lessonView struct {
	ID          string
	Title       string
	Description string
	Outline     []Heading
	Segments    []segmentView
	Videos      []Video
	Prev        *linkView
	Next        *linkView
}

// segmentView is one lesson segment as the lesson template consumes it.
// HTML is trusted compiled output; every other field is escaped.
type segmentView struct {
	Kind         string
	HTML         template.HTML
	SrcDoc       string
	Height       string
	Title        string
	Instructions string
	Code         string
}

// RenderIndex renders the course overview page.
func (r *Renderer) RenderIndex(catalog *Catalog) ([]byte, error) {
	return r.execute(pageIndex, &pageData{
		Site:       r.cfg.site,
		Base:       r.cfg.basePath,
		Categories: r.categoryViews(catalog),
	})
}

// RenderCategory renders the lesson list of one category.
// Returns ErrCategoryNotFound for a category outside the course.
func (r *Renderer) RenderCategory(catalog *Catalog, category string) ([]byte, error) {
	if !catalog.HasCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	cat := r.categoryView(catalog, category)
	return r.execute(pageCategory, &pageData{
		Site:       r.cfg.site,
		Base:       r.cfg.basePath,
		Title:      cat.Title,
		Categories: r.categoryViews(catalog),
		Category:   &cat,
	})
}

// RenderPage renders a compiled lesson as a full HTML page. Literal segments
// are inserted as-is, previews become sandboxed iframes and practice
// segments become editable exercise panels.
func (r *Renderer) RenderPage(catalog *Catalog, lesson *Lesson) ([]byte, error) {
	if lesson == nil {
		return nil, fmt.Errorf("%w: nil lesson", ErrRender)
	}
	cat := r.categoryView(catalog, lesson.Category)
	return r.execute(pageLesson, &pageData{
		Site:       r.cfg.site,
		Base:       r.cfg.basePath,
		Title:      lesson.Title,
		Categories: r.categoryViews(catalog),
		Category:   &cat,
		Lesson:     r.lessonView(lesson),
	})
}

func (r *Renderer) execute(p page, data *pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages[p].ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) categoryViews(catalog *Catalog) []categoryView {
	names := catalog.Categories()
	views := make([]categoryView, 0, len(names))
	for _, name := range names {
		views = append(views, r.categoryView(catalog, name))
	}
	return views
}

func (r *Renderer) categoryView(catalog *Catalog, category string) categoryView {
	view := categoryView{
		Name:  category,
		Title: CategoryTitle(category),
		URL:   r.CategoryURL(category),
	}
	lessons, _ := catalog.Lessons(category)
	for _, m := range lessons {
		view.Lessons = append(view.Lessons, r.link(m))
	}
	return view
}

func (r *Renderer) link(m LessonMeta) linkView {
	return linkView{ID: m.ID, Title: m.Title, URL: r.LessonURL(m)}
}

func (r *Renderer) optionalLink(m *LessonMeta) *linkView {
	if m == nil {
		return nil
	}
	l := r.link(*m)
	return &l
}

func (r *Renderer) lessonView(lesson *Lesson) *lessonView {
	return &lessonView{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Outline:     lesson.Outline,
		Segments:    segmentViews(lesson.Segments),
		Videos:      lesson.Videos,
		Prev:        r.optionalLink(lesson.Prev),
		Next:        r.optionalLink(lesson.Next),
	}
}

func segmentViews(segments []Segment) []segmentView {
	views := make([]segmentView, 0, len(segments))
	for _, s := range segments {
		v := segmentView{Kind: s.Kind.String()}
		switch {
		case s.Kind == SegmentPreview && s.Preview != nil:
			v.SrcDoc = pipeline.BuildSandboxDocument(*s.Preview)
			v.Height = s.Preview.Height
			if v.Height == "" {
				v.Height = pipeline.DefaultPreviewHeight
			}
		case s.Kind == SegmentPractice && s.Practice != nil:
			v.Title = s.Practice.Title
			v.Instructions = s.Practice.Instructions
			v.Code = s.Practice.Code
		default:
			// #nosec G203 -- compiled lesson HTML, sanitized when configured
			v.HTML = template.HTML(s.HTML)
			v.Kind = SegmentLiteral.String()
		}
		views = append(views, v)
	}
	return views
}
