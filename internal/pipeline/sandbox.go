package pipeline

import (
	"regexp"
	"strings"
)

var (
	closeStyle  = regexp.MustCompile(`(?i)</style`)
	closeScript = regexp.MustCompile(`(?i)</script`)
)

// BuildSandboxDocument assembles the standalone document loaded into a
// preview iframe. HTML that already starts with a doctype is used as-is.
func BuildSandboxDocument(p PreviewPayload) string {
	if IsFullDocument(p.HTML) {
		return p.HTML
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="UTF-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	b.WriteString("<style>\nbody { margin: 16px; font-family: system-ui, -apple-system, sans-serif; }\n")
	b.WriteString(closeStyle.ReplaceAllString(p.CSS, `<\/style`))
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(p.HTML)
	b.WriteString("\n")
	if strings.TrimSpace(p.JS) != "" {
		b.WriteString("<script>\ntry {\n")
		b.WriteString(closeScript.ReplaceAllString(p.JS, `<\/script`))
		b.WriteString("\n} catch (error) {\n  console.error('Error in preview:', error);\n}\n</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// IsFullDocument reports whether html is a complete document.
func IsFullDocument(html string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(html)), "<!doctype")
}
