package pipeline

import (
	"strings"
	"testing"
)

func TestBuildSandboxDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		payload      PreviewPayload
		wantContains []string
		wantExcludes []string
	}{
		{
			name:    "fragment wrapped",
			payload: PreviewPayload{HTML: "<p>Hi</p>", CSS: "p { color: red; }", JS: "go();"},
			wantContains: []string{
				"<!DOCTYPE html>",
				"<style>",
				"p { color: red; }",
				"<body>\n<p>Hi</p>",
				"try {\ngo();\n} catch (error)",
			},
		},
		{
			name:         "no script without js",
			payload:      PreviewPayload{HTML: "<p>Hi</p>"},
			wantContains: []string{"<p>Hi</p>"},
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "style close escaped",
			payload:      PreviewPayload{CSS: "a{}</STYLE><script>x()</script>"},
			wantContains: []string{`<\/style>`},
			wantExcludes: []string{"</STYLE>"},
		},
		{
			name:         "script close escaped",
			payload:      PreviewPayload{JS: "s = '</script><img>';"},
			wantContains: []string{`s = '<\/script><img>';`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildSandboxDocument(tt.payload)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("BuildSandboxDocument() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("BuildSandboxDocument() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestBuildSandboxDocument_FullDocument(t *testing.T) {
	t.Parallel()

	doc := "  <!doctype html><html><body>Mine</body></html>"
	if got := BuildSandboxDocument(PreviewPayload{HTML: doc, CSS: "ignored"}); got != doc {
		t.Errorf("full documents should be used as-is, got %q", got)
	}
}
