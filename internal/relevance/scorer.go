// Package relevance implements the deterministic scoring, excerpting and
// ranking pipeline that turns stored documents into search results.
package relevance

import (
	"github.com/credentia-labs/corpora-cli/internal/keywords"
)

// Scoring weights. A single filename or path hit outweighs a small number
// of content occurrences, biasing precision toward obviously-relevant
// files over incidentally-matching ones.
const (
	// ContentWeight is added per case-insensitive content occurrence.
	ContentWeight = 1

	// FilenameBonus is added when the file name contains a keyword.
	FilenameBonus = 5

	// PathBonus is added when the path or category contains a keyword.
	PathBonus = 3
)

// Scorer computes integer relevance scores for one keyword set.
// Scoring is monotonic: an additional occurrence never lowers the score.
type Scorer struct {
	matcher  keywords.Matcher
	keywords []string
}

// NewScorer creates a scorer for a keyword set.
func NewScorer(m keywords.Matcher, kws []string) *Scorer {
	return &Scorer{matcher: m, keywords: kws}
}

// Score computes the relevance of one document. Documents with empty
// content are ineligible and always score zero.
func (s *Scorer) Score(content, name, path string) int {
	if len(content) == 0 {
		return 0
	}

	score := 0
	for _, kw := range s.keywords {
		score += ContentWeight * s.matcher.Count(content, kw)
		if s.matcher.Contains(name, kw) {
			score += FilenameBonus
		}
		if s.matcher.Contains(path, kw) {
			score += PathBonus
		}
	}
	return score
}

// FirstMatch returns the lowest offset of any keyword in content, or -1
// when no keyword occurs.
func (s *Scorer) FirstMatch(content string) int {
	first := -1
	for _, kw := range s.keywords {
		if idx := s.matcher.Index(content, kw); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}
	return first
}
