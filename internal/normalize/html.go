package normalize

import (
	"regexp"
	"strings"
)

var (
	lineBreakTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphEnd  = regexp.MustCompile(`(?i)</p\s*>`)
	blockEnd      = regexp.MustCompile(`(?i)</(?:div|li|ul|ol|h[1-6]|tr|table|section|article|blockquote)\s*>`)
	anyTag        = regexp.MustCompile(`<[^>]*>`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// StripHTML flattens markup into display text. It does not parse or sanitize HTML;
// its output must not be rendered as markup.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := strings.ReplaceAll(html, "\r\n", "\n")
	text = lineBreakTag.ReplaceAllString(text, "\n")
	text = paragraphEnd.ReplaceAllString(text, "\n\n")
	text = blockEnd.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = entities.Replace(text)
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
