package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// placeholderTag matches the tags written by PlaceholderTag.
// Group 1 is the kind, group 2 the encoded payload.
var placeholderTag = regexp.MustCompile(`<div data-(code-preview|practice-editor)="([^"]*)"></div>`)

// SegmentKind identifies what a Segment carries.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPreview
	SegmentPractice
)

// String returns the kind name used in logs and JSON.
func (k SegmentKind) String() string {
	switch k {
	case SegmentPreview:
		return "preview"
	case SegmentPractice:
		return "practice"
	default:
		return "literal"
	}
}

// MarshalText encodes the kind by name.
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *SegmentKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "literal":
		*k = SegmentLiteral
	case "preview":
		*k = SegmentPreview
	case "practice":
		*k = SegmentPractice
	default:
		return fmt.Errorf("unknown segment kind %q", text)
	}
	return nil
}

// Segment is one element of a split document, in document order.
// Literal segments carry HTML; component segments carry a payload.
type Segment struct {
	Kind     SegmentKind      `json:"kind"`
	HTML     string           `json:"html,omitempty"`
	Preview  *PreviewPayload  `json:"preview,omitempty"`
	Practice *PracticePayload `json:"practice,omitempty"`
}

// Splitter splits compiled HTML at placeholder tags.
type Splitter struct {
	Logger *zap.Logger
}

// NewSplitter returns a Splitter logging to logger; nil disables logging.
func NewSplitter(logger *zap.Logger) *Splitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Splitter{Logger: logger}
}

// Split scans html once, left to right. A tag whose payload does not
// decode is logged and dropped without producing a segment.
func (s *Splitter) Split(html string) []Segment {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var segments []Segment
	last := 0
	for _, loc := range placeholderTag.FindAllStringSubmatchIndex(html, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Kind: SegmentLiteral, HTML: html[last:loc[0]]})
		}
		last = loc[1]

		kind := Kind(html[loc[2]:loc[3]])
		encoded := html[loc[4]:loc[5]]

		seg, err := decodeSegment(kind, encoded)
		if err != nil {
			logger.Warn("skipping malformed placeholder",
				zap.String("kind", string(kind)),
				zap.Int("offset", loc[0]),
				zap.Error(err),
			)
			continue
		}
		segments = append(segments, seg)
	}

	if last < len(html) {
		segments = append(segments, Segment{Kind: SegmentLiteral, HTML: html[last:]})
	}
	return segments
}

func decodeSegment(kind Kind, encoded string) (Segment, error) {
	switch kind {
	case KindPreview:
		p, err := DecodePreview(encoded)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: SegmentPreview, Preview: p}, nil
	case KindPractice:
		p, err := DecodePractice(encoded)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: SegmentPractice, Practice: p}, nil
	default:
		return Segment{}, ErrUnknownKind
	}
}

// StripPlaceholders removes every placeholder tag, leaving the literal HTML.
func StripPlaceholders(html string) string {
	return placeholderTag.ReplaceAllLiteralString(html, "")
}

// LiteralHTML concatenates the literal segments in order.
func LiteralHTML(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == SegmentLiteral {
			b.WriteString(seg.HTML)
		}
	}
	return b.String()
}

// Components counts the non-literal segments.
func Components(segments []Segment) int {
	n := 0
	for _, seg := range segments {
		if seg.Kind != SegmentLiteral {
			n++
		}
	}
	return n
}
