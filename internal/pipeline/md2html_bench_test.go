//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// lessonMarkdown builds a lesson of n sections, each with prose, a listing,
// a preview and every third one a practice block.
func lessonMarkdown(n int) string {
	var sb strings.Builder
	sb.WriteString("---\ntitle: Bench\ndescription: Generated lesson\n---\n# Bench\n\n")
	for i := range n {
		fmt.Fprintf(&sb, "## Section %d\n\nSome `inline` text and a [link](./%02d-next.md).\n\n", i+1, i+2)
		sb.WriteString("```css\n.card { display: flex; gap: 1rem; }\n```\n\n")
		sb.WriteString(":::preview height=\"240px\"\n```html\n<div class=\"card\"><p>Hi</p></div>\n```\n```css\n.card { color: teal; }\n```\n```js\ndocument.body.dataset.ready = 1;\n```\n:::\n\n")
		if i%3 == 0 {
			sb.WriteString(":::practice title=\"Center it\"\nCenter the card.\n\n```html\n<div class=\"card\"></div>\n```\n:::\n\n")
		}
	}
	return sb.String()
}

func BenchmarkExtract(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		content := lessonMarkdown(n)
		b.Run(fmt.Sprintf("sections_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = Extract(content)
			}
		})
	}
}

func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter("")
	ctx := context.Background()

	for _, n := range []int{1, 10, 100} {
		content := Extract(lessonMarkdown(n))
		b.Run(fmt.Sprintf("sections_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileAndSplit(b *testing.B) {
	splitter := NewSplitter(nil)
	ctx := context.Background()
	content := lessonMarkdown(20)

	b.Run("plain", func(b *testing.B) {
		compiler := NewCompiler("")
		b.ReportAllocs()
		for b.Loop() {
			doc, err := compiler.Compile(ctx, content)
			if err != nil {
				b.Fatal(err)
			}
			_ = splitter.Split(doc.HTML)
		}
	})

	b.Run("sanitized", func(b *testing.B) {
		compiler := NewCompiler("")
		compiler.Sanitizer = SanitizePolicy()
		b.ReportAllocs()
		for b.Loop() {
			doc, err := compiler.Compile(ctx, content)
			if err != nil {
				b.Fatal(err)
			}
			_ = splitter.Split(doc.HTML)
		}
	})
}

// BenchmarkCompileParallel mirrors a build rendering lessons concurrently
// through one shared compiler.
func BenchmarkCompileParallel(b *testing.B) {
	compiler := NewCompiler("")
	ctx := context.Background()
	content := lessonMarkdown(10)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := compiler.Compile(ctx, content); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkOutline(b *testing.B) {
	doc, err := NewCompiler("").Compile(context.Background(), lessonMarkdown(50))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = Outline(doc.HTML)
	}
}
