package services

import (
	"regexp"
	"strings"
)

var (
	fenceLine      = regexp.MustCompile("(?m)^```[^\n]*$")
	inlineCode     = regexp.MustCompile("`([^`]+)`")
	imageMarkup    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkMarkup     = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingMarkers = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote     = regexp.MustCompile(`(?m)^>\s*`)
	horizontalRule = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes markdown markup from uploaded documents before
// storage, keeping the text itself searchable. Code fence contents are
// kept; only the markers go.
func stripMarkdown(content string) string {
	content = fenceLine.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = imageMarkup.ReplaceAllString(content, "$1")
	content = linkMarkup.ReplaceAllString(content, "$1")
	content = headingMarkers.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = horizontalRule.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")

	content = blankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content) + "\n"
}
