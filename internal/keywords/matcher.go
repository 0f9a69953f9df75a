package keywords

import (
	"strings"
	"unicode/utf8"
)

// Matcher decides whether and how often a keyword occurs in text.
// The default is coarse case-insensitive substring containment rather
// than tokenised or word-boundary matching, which deliberately favours
// recall. The scorer and excerpt builder only see this interface, so a
// tokenised or fuzzy matcher can be swapped in without touching them.
type Matcher interface {
	// Contains reports whether term occurs in text.
	Contains(text, term string) bool

	// Count returns the number of non-overlapping occurrences of term
	// in text.
	Count(text, term string) int

	// Index returns the offset of the first occurrence of term in text,
	// or -1 when absent.
	Index(text, term string) int
}

// Ensure SubstringMatcher implements the interface.
var _ Matcher = SubstringMatcher{}

// SubstringMatcher matches by case-insensitive substring containment.
type SubstringMatcher struct{}

// Contains reports whether term occurs in text, ignoring case.
func (SubstringMatcher) Contains(text, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// Count returns case-insensitive non-overlapping occurrences of term.
func (SubstringMatcher) Count(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(term))
}

// Index returns the offset of the first case-insensitive occurrence.
// The offset is valid in text itself, not in its lowercased form; the
// two differ for the few runes whose lowercase has another byte length.
func (SubstringMatcher) Index(text, term string) int {
	if term == "" {
		return -1
	}
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(term))
	if idx <= 0 || len(lower) == len(text) {
		return idx
	}

	// Walk both strings in step to map the lowered offset back.
	orig, low := 0, 0
	for low < idx && orig < len(text) {
		r, size := utf8.DecodeRuneInString(text[orig:])
		orig += size
		low += len(strings.ToLower(string(r)))
	}
	return orig
}
