package relevance

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultExcerptLength bounds excerpt size including ellipsis markers.
	DefaultExcerptLength = 300

	// proseWindow is the character count kept before and after a match
	// in prose mode.
	proseWindow = 150

	// codeContextLines is the line count kept before and after the
	// matching line in code mode.
	codeContextLines = 2

	ellipsis = "..."
)

// ExcerptMode selects the extraction strategy.
type ExcerptMode int

const (
	// ModeProse extracts a symmetric character window around the match.
	ModeProse ExcerptMode = iota

	// ModeCode extracts whole lines of context around the matching line.
	ModeCode
)

// Excerpt extracts a bounded context window around the first keyword
// match found by the scorer. When no keyword matches, a bounded prefix
// is returned. The result never exceeds maxLen, ellipses included.
func Excerpt(s *Scorer, content string, mode ExcerptMode, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}

	offset := s.FirstMatch(content)
	if offset < 0 {
		return prefix(content, maxLen)
	}

	if mode == ModeCode {
		return codeExcerpt(content, offset, maxLen)
	}
	return proseExcerpt(content, offset, maxLen)
}

// prefix returns the leading maxLen characters with a trailing ellipsis
// when truncated.
func prefix(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return truncate(content, maxLen)
}

// proseExcerpt extracts a symmetric window around offset, with leading
// and trailing ellipses when the window does not reach the document
// boundaries.
func proseExcerpt(content string, offset, maxLen int) string {
	start := offset - proseWindow
	if start < 0 {
		start = 0
	}
	start = runeStart(content, start)
	end := offset + proseWindow
	if end > len(content) {
		end = len(content)
	}
	end = runeStart(content, end)

	snippet := content[start:end]
	var lead, trail string
	if start > 0 {
		lead = ellipsis
	}
	if end < len(content) {
		trail = ellipsis
	}

	if len(lead)+len(snippet)+len(trail) > maxLen {
		keep := maxLen - len(lead) - len(ellipsis)
		if keep < 0 {
			keep = 0
		}
		snippet = snippet[:runeStart(snippet, keep)]
		trail = ellipsis
	}

	return lead + snippet + trail
}

// codeExcerpt locates the line containing offset, keeps context lines on
// both sides joined by newlines, marks omitted lines with ellipses, then
// re-truncates by character count if still over the bound.
func codeExcerpt(content string, offset, maxLen int) string {
	lines := strings.Split(content, "\n")

	// Locate the line containing the match offset.
	matchLine := 0
	consumed := 0
	for i, line := range lines {
		consumed += len(line) + 1 // +1 for the newline
		if offset < consumed {
			matchLine = i
			break
		}
	}

	start := matchLine - codeContextLines
	if start < 0 {
		start = 0
	}
	end := matchLine + codeContextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, ellipsis)
	}
	parts = append(parts, lines[start:end]...)
	if end < len(lines) {
		parts = append(parts, ellipsis)
	}

	out := strings.Join(parts, "\n")
	if len(out) > maxLen {
		out = truncate(out, maxLen)
	}
	return out
}

// truncate cuts s to maxLen including the trailing ellipsis, never
// splitting a rune.
func truncate(s string, maxLen int) string {
	if maxLen <= len(ellipsis) {
		return s[:runeStart(s, maxLen)]
	}
	return s[:runeStart(s, maxLen-len(ellipsis))] + ellipsis
}

// runeStart moves an offset left to the nearest rune boundary.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
