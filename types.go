package coursemd

import "github.com/alnah/go-coursemd/internal/pipeline"

// Pipeline types shared with callers.
type (
	// Document is a compiled lesson: HTML with placeholders plus front matter.
	Document = pipeline.Document

	// Segment is one literal or component element of a split document.
	Segment = pipeline.Segment

	// SegmentKind identifies what a Segment carries.
	SegmentKind = pipeline.SegmentKind

	// PreviewPayload is the data of a live code preview.
	PreviewPayload = pipeline.PreviewPayload

	// PracticePayload is the data of a practice exercise.
	PracticePayload = pipeline.PracticePayload

	// Heading is an outline entry of a lesson.
	Heading = pipeline.Heading
)

// Segment kinds.
const (
	SegmentLiteral  = pipeline.SegmentLiteral
	SegmentPreview  = pipeline.SegmentPreview
	SegmentPractice = pipeline.SegmentPractice
)

// Default site labels.
const (
	DefaultSiteTitle   = "WebDevArcade"
	DefaultSiteTagline = "Learn. Code. Level Up."
)

// Site holds labels shared by every page.
type Site struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline,omitempty"`
}

// Lesson is a compiled lesson ready for a page template or a JSON response.
type Lesson struct {
	ID          string         `json:"id"`
	Category    string         `json:"category"`
	Slug        string         `json:"slug"`
	Order       int            `json:"order"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	FrontMatter map[string]any `json:"frontMatter,omitempty"`
	Outline     []Heading      `json:"outline"`
	Segments    []Segment      `json:"segments"`
	Prev        *LessonMeta    `json:"prev,omitempty"`
	Next        *LessonMeta    `json:"next,omitempty"`
	Videos      []Video        `json:"videos,omitempty"`
}

// Components returns the number of preview and practice segments.
func (l *Lesson) Components() int {
	return pipeline.Components(l.Segments)
}
