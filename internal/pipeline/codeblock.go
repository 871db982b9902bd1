package pipeline

import (
	"bytes"
	"encoding/base64"
	"html"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// copyAttr holds the base64 of a fenced block's original text.
const copyAttr = "data-copy"

// codeSourceTransformer records each fenced code block's source text as a
// node attribute, where the highlighting wrapper can read it back.
type codeSourceTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *codeSourceTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		block.SetAttributeString(copyAttr, []byte(encodeCopyText(buf.String())))
		return ast.WalkSkipChildren, nil
	})
}

// encodeCopyText encodes code for a data attribute. Decoding the value
// (atob + UTF-8) yields the exact original bytes.
func encodeCopyText(code string) string {
	return base64.StdEncoding.EncodeToString([]byte(code))
}

// DecodeCopyText reverses the copy payload encoding.
func DecodeCopyText(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// codeBlockWrapper wraps each rendered code block with a header showing the
// language and a copy control. When chroma could not highlight the block
// (unknown language), the wrapper also owns the <pre> element.
func codeBlockWrapper(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	lang, hasLang := ctx.Language()
	if !entering {
		if !ctx.Highlighted() {
			_, _ = w.WriteString("</code></pre>")
		}
		_, _ = w.WriteString("</div>\n")
		return
	}

	label := "TEXT"
	if hasLang && len(lang) > 0 {
		label = strings.ToUpper(string(lang))
	}

	_, _ = w.WriteString(`<div class="code-block"><div class="code-block-header"><span class="code-block-lang">`)
	_, _ = w.WriteString(html.EscapeString(label))
	_, _ = w.WriteString(`</span><button type="button" class="code-copy" data-copy="`)
	_, _ = w.WriteString(copyPayload(ctx))
	_, _ = w.WriteString(`" aria-label="Copy code">Copy</button></div>`)

	if !ctx.Highlighted() {
		_, _ = w.WriteString("<pre><code")
		if hasLang && len(lang) > 0 {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.WriteString(html.EscapeString(string(lang)))
			_, _ = w.WriteString(`"`)
		}
		_, _ = w.WriteString(">")
	}
}

// copyPayload reads the encoded source recorded by codeSourceTransformer.
// The value is base64, so it needs no attribute escaping.
func copyPayload(ctx highlighting.CodeBlockContext) string {
	attrs := ctx.Attributes()
	if attrs == nil {
		return ""
	}
	v, ok := attrs.GetString(copyAttr)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	}
	return ""
}
