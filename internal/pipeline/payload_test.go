package pipeline

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPayload_RoundTrip(t *testing.T) {
	t.Parallel()

	previews := []PreviewPayload{
		{},
		{HTML: "<p>Hi</p>", Height: "400px"},
		{HTML: `<a href="x">"q"</a>`, CSS: "a::after { content: '\\2014'; }", JS: "alert(`${1 < 2}`);", Height: "50%"},
		{HTML: "héllo wörld ✓", Height: DefaultPreviewHeight},
		{JS: "</script><script>evil()</script>"},
	}
	for _, p := range previews {
		encoded, err := EncodePayload(p)
		if err != nil {
			t.Fatalf("EncodePayload(%+v) error = %v", p, err)
		}
		got, err := DecodePreview(encoded)
		if err != nil {
			t.Fatalf("DecodePreview() error = %v", err)
		}
		if diff := cmp.Diff(p, *got); diff != "" {
			t.Errorf("preview round trip mismatch (-want +got):\n%s", diff)
		}
	}

	practices := []PracticePayload{
		{},
		{Title: "Try it", Instructions: "Fix the bug.", Code: "<div></div>"},
		{Title: "Quotes \"and\" <tags>", Instructions: "Line 1\n\nLine 2", Code: "<p>\n  &amp;\n</p>"},
	}
	for _, p := range practices {
		encoded, err := EncodePayload(p)
		if err != nil {
			t.Fatalf("EncodePayload(%+v) error = %v", p, err)
		}
		got, err := DecodePractice(encoded)
		if err != nil {
			t.Fatalf("DecodePractice() error = %v", err)
		}
		if diff := cmp.Diff(p, *got); diff != "" {
			t.Errorf("practice round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodePayload_AttributeSafe(t *testing.T) {
	t.Parallel()

	encoded, err := EncodePayload(PreviewPayload{
		HTML: "<div class=\"a\">&</div>\n```\n---\n",
		JS:   "'\"`",
	})
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	if strings.ContainsAny(encoded, "\"'<>&` \n*_[]#") {
		t.Errorf("encoded payload has HTML or Markdown significant characters: %q", encoded)
	}
}

func TestEncodePayload_JSONKeys(t *testing.T) {
	t.Parallel()

	encoded, err := EncodePayload(PracticePayload{Title: "t", Instructions: "i", Code: "c"})
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("payload is not standard base64: %v", err)
	}
	want := `{"title":"t","instructions":"i","code":"c"}`
	if string(raw) != want {
		t.Errorf("payload JSON = %s, want %s", raw, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	notJSON := base64.StdEncoding.EncodeToString([]byte("not json"))

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"invalid character", "eyJodG1sIjoi*In0=", ErrPayloadEncoding},
		{"truncated", "eyJodG1sIjoiIn0", ErrPayloadEncoding},
		{"valid base64 not json", notJSON, ErrPayloadJSON},
		{"empty", "", ErrPayloadJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := DecodePreview(tt.encoded); !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodePreview() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := DecodePractice(tt.encoded); !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodePractice() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlaceholderTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindPreview, `<div data-code-preview="QUJD"></div>`},
		{KindPractice, `<div data-practice-editor="QUJD"></div>`},
	}

	for _, tt := range tests {
		if got := PlaceholderTag(tt.kind, "QUJD"); got != tt.want {
			t.Errorf("PlaceholderTag(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
