// Package keywords turns free text into a normalised keyword set and
// defines the matcher the scoring pipeline uses.
package keywords

import "strings"

// minQueryTokenLen filters out short stopword-like tokens in query mode.
const minQueryTokenLen = 2

// FromMessage extracts keywords from a chat message. The message is
// lowercased and every vocabulary term it contains as a substring is
// kept; trigger phrases expand to their implied keyword sets. The result
// is deduplicated and its order is not significant.
func FromMessage(message string) []string {
	lower := strings.ToLower(message)
	seen := make(map[string]bool)
	var out []string

	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}

	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			add(term)
		}
	}

	for phrase, implied := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			for _, kw := range implied {
				add(kw)
			}
		}
	}

	return out
}

// FromQuery extracts keywords from an ad-hoc query: whitespace-split,
// lowercased, tokens longer than two characters, deduplicated.
func FromQuery(query string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len(token) <= minQueryTokenLen {
			continue
		}
		if !seen[token] {
			seen[token] = true
			out = append(out, token)
		}
	}

	return out
}
