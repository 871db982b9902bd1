package pipeline

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustTag(t *testing.T, kind Kind, payload any) string {
	t.Helper()
	encoded, err := EncodePayload(payload)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	return PlaceholderTag(kind, encoded)
}

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	preview := PreviewPayload{HTML: "<p>x</p>", Height: "300px"}
	practice := PracticePayload{Title: "T", Instructions: "I", Code: "<b></b>"}
	pv := mustTag(t, KindPreview, preview)
	pr := mustTag(t, KindPractice, practice)

	tests := []struct {
		name string
		html string
		want []Segment
	}{
		{
			name: "empty",
			html: "",
			want: nil,
		},
		{
			name: "literal only",
			html: "<p>hello</p>",
			want: []Segment{{Kind: SegmentLiteral, HTML: "<p>hello</p>"}},
		},
		{
			name: "literal component literal",
			html: "<p>a</p>\n" + pv + "\n<p>b</p>",
			want: []Segment{
				{Kind: SegmentLiteral, HTML: "<p>a</p>\n"},
				{Kind: SegmentPreview, Preview: &preview},
				{Kind: SegmentLiteral, HTML: "\n<p>b</p>"},
			},
		},
		{
			name: "adjacent tags produce no empty literal",
			html: pv + pr,
			want: []Segment{
				{Kind: SegmentPreview, Preview: &preview},
				{Kind: SegmentPractice, Practice: &practice},
			},
		},
		{
			name: "unknown kind left as literal",
			html: `<div data-other="QUJD"></div>`,
			want: []Segment{{Kind: SegmentLiteral, HTML: `<div data-other="QUJD"></div>`}},
		},
	}

	s := NewSplitter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, s.Split(tt.html)); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitter_LiteralReconstruction(t *testing.T) {
	t.Parallel()

	html := "<h2>a</h2>" + mustTag(t, KindPractice, PracticePayload{Title: "x"}) +
		"<p>b</p>" + mustTag(t, KindPreview, PreviewPayload{CSS: "p{}"}) + "<p>c</p>"

	segs := NewSplitter(nil).Split(html)
	want := "<h2>a</h2><p>b</p><p>c</p>"
	if got := LiteralHTML(segs); got != want {
		t.Errorf("LiteralHTML() = %q, want %q", got, want)
	}
	if got := StripPlaceholders(html); got != want {
		t.Errorf("StripPlaceholders() = %q, want %q", got, want)
	}
	if n := Components(segs); n != 2 {
		t.Errorf("Components() = %d, want 2", n)
	}
}

func TestSplitter_MalformedPayloads(t *testing.T) {
	t.Parallel()

	notJSON := base64.StdEncoding.EncodeToString([]byte("{not json"))
	good := mustTag(t, KindPreview, PreviewPayload{HTML: "ok"})

	tests := []struct {
		name     string
		html     string
		wantKind string
	}{
		{"bad base64", `<div data-code-preview="@@@"></div>`, "code-preview"},
		{"bad json", `<div data-practice-editor="` + notJSON + `"></div>`, "practice-editor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.WarnLevel)
			segs := NewSplitter(zap.New(core)).Split("<p>a</p>" + tt.html + good)

			if len(segs) != 2 || segs[0].Kind != SegmentLiteral || segs[1].Kind != SegmentPreview {
				t.Errorf("Split() = %+v, want literal then the one good preview", segs)
			}
			if logs.Len() != 1 {
				t.Fatalf("warn logs = %d, want 1", logs.Len())
			}
			fields := logs.All()[0].ContextMap()
			if fields["kind"] != tt.wantKind {
				t.Errorf("log kind = %v, want %q", fields["kind"], tt.wantKind)
			}
			if _, ok := fields["error"]; !ok {
				t.Error("log entry should carry the decode error")
			}
		})
	}
}

func TestSplitter_ZeroValue(t *testing.T) {
	t.Parallel()

	var s Splitter
	segs := s.Split(`<div data-code-preview="!"></div>`)
	if len(segs) != 0 {
		t.Errorf("Split() = %+v, want no segments", segs)
	}
}

func TestSegment_JSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Segment{Kind: SegmentPractice, Practice: &PracticePayload{Title: "T"}})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"kind":"practice","practice":{"title":"T","instructions":"","code":""}}`
	if string(raw) != want {
		t.Errorf("json = %s, want %s", raw, want)
	}
}

func TestSegment_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	segs := []Segment{
		{Kind: SegmentLiteral, HTML: "<p>a</p>"},
		{Kind: SegmentPreview, Preview: &PreviewPayload{HTML: "<b>x</b>", CSS: "b{}", JS: "go()", Height: "200px"}},
		{Kind: SegmentPractice, Practice: &PracticePayload{Title: "T", Instructions: "I", Code: "<i></i>"}},
	}

	raw, err := json.Marshal(segs)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var got []Segment
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(segs, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentKind_UnmarshalText_Unknown(t *testing.T) {
	t.Parallel()

	var seg Segment
	if err := json.Unmarshal([]byte(`{"kind":"video"}`), &seg); err == nil {
		t.Error("json.Unmarshal() should reject an unknown kind")
	}
}
