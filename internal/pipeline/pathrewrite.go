package pipeline

import (
	"strings"

	"github.com/andybalholm/cascadia"
	xhtml "golang.org/x/net/html"
)

// linkSelector picks the elements whose references are rewritten.
var linkSelector = cascadia.MustCompile("img[src], a[href]")

// LinkResolver maps a relative reference found in a lesson (an image path
// or a link to a sibling .md file) to a site URL. It reports false to
// leave the reference unchanged.
type LinkResolver func(ref string) (string, bool)

// RewriteRelativeLinks rewrites relative img[src] and a[href] values in an
// HTML fragment through resolve. If resolve is nil or nothing in the
// fragment is relative, the HTML is returned unchanged.
//
// Does NOT rewrite:
//   - URLs with a scheme, protocol-relative URLs, anchors
//   - Absolute paths (already site URLs)
//   - srcset, CSS url() and script[src]
func RewriteRelativeLinks(htmlContent string, resolve LinkResolver) (string, error) {
	if resolve == nil || !strings.Contains(htmlContent, "<") {
		return htmlContent, nil
	}

	root, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range linkSelector.MatchAll(root) {
		key := "href"
		if n.Data == "img" {
			key = "src"
		}
		if rewriteAttr(n, key, resolve) {
			changed = true
		}
	}
	if !changed {
		return htmlContent, nil
	}

	return renderFragment(root)
}

// renderFragment renders only the children of the container node, avoiding
// an <html><body> wrapper.
func renderFragment(root *xhtml.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := xhtml.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteAttr rewrites a single attribute if it holds a relative reference.
func rewriteAttr(n *xhtml.Node, key string, resolve LinkResolver) bool {
	for i, a := range n.Attr {
		if a.Key != key || !isRelativePath(a.Val) {
			continue
		}
		if strings.Contains(a.Val, "..") {
			continue // Leave traversal attempts untouched
		}
		if resolved, ok := resolve(a.Val); ok {
			n.Attr[i].Val = resolved
			return true
		}
	}
	return false
}

// isRelativePath returns true if the reference should be offered to the resolver.
func isRelativePath(ref string) bool {
	if ref == "" {
		return false
	}

	// Skip anchors, absolute paths and protocol-relative URLs
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		return false
	}

	// Skip anything with a scheme (http:, https:, data:, mailto:, javascript:)
	if i := strings.IndexAny(ref, ":/?#"); i > 0 && ref[i] == ':' {
		return false
	}

	return true
}
