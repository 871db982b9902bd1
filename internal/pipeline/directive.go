package pipeline

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Directive grammar, one kind per block:
//
//	start := ":::" kind [WS params] WS* NL
//	body  := lines, possibly none
//	end   := ":::" WS* at line end
//
// A start fence pairs with the next end fence only when no other start fence
// comes first. End fences inside a fenced code block of the body do not
// count, and directives inside a fenced code block of the document are left
// alone. A start fence with no matching end fence passes through as literal
// text.
var (
	directiveStart = regexp.MustCompile(`^:::(practice|preview)(?:[ \t]+(.*?))?[ \t]*$`)
	directiveEnd   = regexp.MustCompile(`^:::[ \t]*$`)

	titleParam  = regexp.MustCompile(`(?:^|[ \t])title=(?:"([^"]*)"|'([^']*)'|([^\s"']+))`)
	heightParam = regexp.MustCompile(`(?:^|[ \t])height=["']?(\d+)(px|%)?["']?(?:[ \t]|$)`)
)

// DirectiveExtractor defines the contract for directive extraction.
type DirectiveExtractor interface {
	ExtractDirectives(content string) string
}

// FencedDirectiveExtractor replaces :::practice and :::preview blocks with
// placeholder tags carrying their encoded payloads.
type FencedDirectiveExtractor struct{}

// ExtractDirectives transforms practice blocks first, then preview blocks.
// Input without directives is returned unchanged.
func (e *FencedDirectiveExtractor) ExtractDirectives(content string) string {
	if !strings.Contains(content, ":::") {
		return content
	}
	content = replaceBlocks(content, KindPractice, replacePractice)
	content = replaceBlocks(content, KindPreview, replacePreview)
	return content
}

// Extract runs the default extractor over content.
func Extract(content string) string {
	return (&FencedDirectiveExtractor{}).ExtractDirectives(content)
}

// directiveName maps a kind to the word after ":::".
func directiveName(kind Kind) string {
	if kind == KindPractice {
		return "practice"
	}
	return "preview"
}

// replaceBlocks rewrites every complete block of kind with the output of
// replace, which receives the start fence parameters and the body. The end
// fence's line break is kept.
func replaceBlocks(content string, kind Kind, replace func(params, body string) (string, bool)) string {
	name := directiveName(kind)
	lines := strings.SplitAfter(content, "\n")

	var out strings.Builder
	out.Grow(len(content))

	var open fence
	inFence := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		text := trimEOL(line)

		if inFence {
			if open.closes(text) {
				inFence = false
			}
			out.WriteString(line)
			continue
		}

		if m := directiveStart.FindStringSubmatch(text); m != nil && m[1] == name {
			if end, ok := findEnd(lines, i+1); ok {
				body := strings.TrimSuffix(strings.Join(lines[i+1:end], ""), "\n")
				if replacement, ok := replace(m[2], body); ok {
					out.WriteString(replacement)
					if strings.HasSuffix(lines[end], "\n") {
						out.WriteString("\n")
					}
					i = end
					continue
				}
			}
		}

		if f, ok := openFence(text); ok {
			open, inFence = f, true
		}
		out.WriteString(line)
	}
	return out.String()
}

// findEnd returns the index of the end fence closing a block whose body
// starts at lines[from].
func findEnd(lines []string, from int) (int, bool) {
	var open fence
	inFence := false
	for j := from; j < len(lines); j++ {
		text := trimEOL(lines[j])
		switch {
		case inFence:
			if open.closes(text) {
				inFence = false
			}
		case directiveEnd.MatchString(text):
			return j, true
		case directiveStart.MatchString(text):
			return 0, false
		default:
			if f, ok := openFence(text); ok {
				open, inFence = f, true
			}
		}
	}
	return 0, false
}

func replacePractice(params, body string) (string, bool) {
	encoded, err := EncodePayload(parsePractice(params, body))
	if err != nil {
		return "", false
	}
	return "\n" + PlaceholderTag(KindPractice, encoded) + "\n", true
}

func replacePreview(params, body string) (string, bool) {
	encoded, err := EncodePayload(parsePreview(params, body))
	if err != nil {
		return "", false
	}

	// The source listing stays visible, followed by the live sandbox.
	tag := PlaceholderTag(KindPreview, encoded)
	if strings.TrimSpace(body) == "" {
		return "\n" + tag + "\n", true
	}
	return body + "\n\n" + tag + "\n", true
}

// fence is an open fenced code block: three or more backticks or tildes.
type fence struct {
	char byte
	size int
	lang string // First word of the info string, lower case
}

// openFence reports whether line opens a fenced code block.
func openFence(line string) (fence, bool) {
	s := strings.TrimLeft(line, " \t")
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return fence{}, false
	}
	n := 0
	for n < len(s) && s[n] == s[0] {
		n++
	}
	if n < 3 {
		return fence{}, false
	}
	info := strings.TrimSpace(s[n:])
	if s[0] == '`' && strings.Contains(info, "`") {
		return fence{}, false
	}
	lang, _, _ := strings.Cut(info, " ")
	lang, _, _ = strings.Cut(lang, "\t")
	return fence{char: s[0], size: n, lang: strings.ToLower(lang)}, true
}

// closes reports whether line closes f: the same character, at least as
// many times, and nothing else.
func (f fence) closes(line string) bool {
	s := strings.Trim(line, " \t")
	return len(s) >= f.size && strings.Trim(s, string(f.char)) == ""
}

type codeBlock struct {
	lang    string
	content string
}

// splitBody returns the text before the first fenced code block of body,
// and the top-level fenced code blocks in order. A block left open runs to
// the end of the body.
func splitBody(body string) (string, []codeBlock) {
	var (
		prose   strings.Builder
		content strings.Builder
		blocks  []codeBlock
		open    fence
		inFence bool
		fenced  bool
	)
	for _, line := range strings.SplitAfter(body, "\n") {
		text := trimEOL(line)
		if inFence {
			if open.closes(text) {
				blocks = append(blocks, codeBlock{lang: open.lang, content: content.String()})
				content.Reset()
				inFence = false
				continue
			}
			content.WriteString(line)
			continue
		}
		if f, ok := openFence(text); ok {
			open, inFence, fenced = f, true, true
			continue
		}
		if !fenced {
			prose.WriteString(line)
		}
	}
	if inFence {
		blocks = append(blocks, codeBlock{lang: open.lang, content: content.String()})
	}
	return prose.String(), blocks
}

// firstBlock returns the trimmed content of the first block in one of langs.
func firstBlock(blocks []codeBlock, langs ...string) string {
	for _, b := range blocks {
		if slices.Contains(langs, b.lang) {
			return strings.TrimSpace(b.content)
		}
	}
	return ""
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}

// parsePractice builds a practice payload from raw parameters and body.
// Instructions are the text before the first code block of any language.
func parsePractice(params, body string) PracticePayload {
	prose, blocks := splitBody(body)
	return PracticePayload{
		Title:        parseTitle(params),
		Instructions: strings.TrimSpace(prose),
		Code:         firstBlock(blocks, "html"),
	}
}

// parsePreview builds a preview payload. Each language is searched
// independently, so order and presence inside the body are unconstrained.
func parsePreview(params, body string) PreviewPayload {
	_, blocks := splitBody(body)
	return PreviewPayload{
		HTML:   firstBlock(blocks, "html"),
		CSS:    firstBlock(blocks, "css"),
		JS:     firstBlock(blocks, "js", "javascript"),
		Height: parseHeight(params),
	}
}

func parseTitle(params string) string {
	m := titleParam.FindStringSubmatch(params)
	if m == nil {
		return DefaultPracticeTitle
	}
	for _, v := range m[1:] {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return DefaultPracticeTitle
}

// parseHeight accepts a bare integer (pixels) or an explicit px/% suffix.
func parseHeight(params string) string {
	m := heightParam.FindStringSubmatch(params)
	if m == nil {
		return DefaultPreviewHeight
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultPreviewHeight
	}
	unit := m[2]
	if unit == "" {
		unit = "px"
	}
	return strconv.Itoa(n) + unit
}
