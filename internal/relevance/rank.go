package relevance

import (
	"sort"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// Scored pairs a document with its relevance score before ranking.
type Scored struct {
	Document domain.IndexedDocument
	Score    int
}

// Rank filters out non-matching documents, sorts descending by score
// with ascending path as the tie-break so equal scores order
// deterministically, and truncates to limit.
func Rank(scored []Scored, limit int) []Scored {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	kept := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].Document.Path < kept[j].Document.Path
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
