package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractDescription_FirstProseParagraph(t *testing.T) {
	readme := "# my-project\n\n" +
		"A toolkit for attaching and verifying provenance manifests on media assets.\n\n" +
		"## Install\n\ncargo install my-project\n"

	got := ExtractDescription(readme)

	assert.Equal(t, "A toolkit for attaching and verifying provenance manifests on media assets.", got)
}

func TestExtractDescription_SkipsBadges(t *testing.T) {
	readme := "# project\n\n" +
		"[![CI](https://img.shields.io/badge/ci-passing-green)](https://example.com)\n" +
		"This library implements the full validation pipeline for signed claims.\n"

	got := ExtractDescription(readme)

	assert.Equal(t, "This library implements the full validation pipeline for signed claims.", got)
}

func TestExtractDescription_SkipsShortParagraphs(t *testing.T) {
	readme := "# project\n\nTiny stub.\n\nThe actual description paragraph, long enough to qualify as prose.\n"

	got := ExtractDescription(readme)

	assert.Equal(t, "The actual description paragraph, long enough to qualify as prose.", got)
}

func TestExtractDescription_TruncatesLongParagraphs(t *testing.T) {
	readme := "# project\n\n" + strings.Repeat("words and more words ", 30)

	got := ExtractDescription(readme)

	assert.Len(t, got, 200)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractDescription_TruncationKeepsValidUTF8(t *testing.T) {
	readme := "# project\n\n" + strings.Repeat("höher ", 60)

	got := ExtractDescription(readme)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 200)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractDescription_HandlesWindowsLineEndings(t *testing.T) {
	readme := "# project\r\n\r\nA description paragraph that uses carriage return line endings.\r\n"

	got := ExtractDescription(readme)

	assert.Equal(t, "A description paragraph that uses carriage return line endings.", got)
}

func TestExtractDescription_NoSuitableParagraph(t *testing.T) {
	assert.Empty(t, ExtractDescription(""))
	assert.Empty(t, ExtractDescription("# only headings\n\n## nothing else\n"))
	assert.Empty(t, ExtractDescription("short\n"))
}
