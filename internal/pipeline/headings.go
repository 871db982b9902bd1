package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading is an outline entry.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// firstH1Pattern matches the first level-one heading.
// Captures: 1=inner HTML (may contain inline tags)
var firstH1Pattern = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>\n?`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// outlineSelector picks the headings listed in a lesson outline.
var outlineSelector = cascadia.MustCompile("h2[id], h3[id]")

// stripHTMLTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace. Decoding entities avoids double-encoding when the
// text is later escaped for HTML output.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// FirstH1 returns the text of the first <h1>, or "" when there is none.
func FirstH1(htmlContent string) string {
	m := firstH1Pattern.FindStringSubmatch(htmlContent)
	if m == nil {
		return ""
	}
	return stripHTMLTags(m[1])
}

// RemoveFirstH1 drops the first <h1> element. The page template renders
// the title separately.
func RemoveFirstH1(htmlContent string) string {
	loc := firstH1Pattern.FindStringIndex(htmlContent)
	if loc == nil {
		return htmlContent
	}
	return htmlContent[:loc[0]] + htmlContent[loc[1]:]
}

// Outline lists h2 and h3 headings carrying an id, in document order.
func Outline(htmlContent string) []Heading {
	root, err := parseFragment(htmlContent)
	if err != nil {
		return nil
	}

	var headings []Heading
	for _, n := range outlineSelector.MatchAll(root) {
		level := 2
		if n.DataAtom == atom.H3 {
			level = 3
		}
		headings = append(headings, Heading{
			Level: level,
			ID:    attr(n, "id"),
			Text:  strings.Join(strings.Fields(nodeText(n)), " "),
		})
	}
	return headings
}

// parseFragment parses an HTML fragment in body context under a single
// document node, so selectors can walk it uniformly.
func parseFragment(content string) (*xhtml.Node, error) {
	body := &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := xhtml.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	container := &xhtml.Node{Type: xhtml.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *xhtml.Node) string {
	if n.Type == xhtml.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
