package services

import (
	"strings"
	"unicode/utf8"
)

const (
	// descriptionMaxLen bounds the stored corpus description.
	descriptionMaxLen = 200

	// descriptionMinLen filters out stub paragraphs and stray fragments.
	descriptionMinLen = 30
)

// ExtractDescription returns the first prose paragraph of a README:
// not a heading, not a badge row, longer than 30 characters, truncated
// to the stored bound. Returns "" when no suitable paragraph exists;
// the caller treats that as non-fatal and leaves the description null.
func ExtractDescription(readme string) string {
	if readme == "" {
		return ""
	}

	paragraphs := strings.Split(strings.ReplaceAll(readme, "\r\n", "\n"), "\n\n")
	for _, para := range paragraphs {
		lines := strings.Split(para, "\n")
		kept := make([]string, 0, len(lines))
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "#") {
				continue
			}
			if isBadgeLine(line) {
				continue
			}
			kept = append(kept, line)
		}

		text := strings.Join(kept, " ")
		if len(text) <= descriptionMinLen {
			continue
		}

		if len(text) > descriptionMaxLen {
			cut := descriptionMaxLen - 3
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut] + "..."
		}
		return text
	}

	return ""
}

// isBadgeLine reports whether a README line is badge markup rather than prose.
func isBadgeLine(line string) bool {
	return strings.HasPrefix(line, "[![") ||
		strings.HasPrefix(line, "![") ||
		strings.Contains(line, "img.shields.io")
}
