package matching

import (
	"sort"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

// DefaultTopN is how many matches a run keeps
const DefaultTopN = 10

// Rank sorts matches by score, highest first, and keeps the first topN.
// Equal scores keep their input order. The input slice is not modified.
func Rank(matches []domain.Match, topN int) []domain.Match {
	ranked := make([]domain.Match, len(matches))
	copy(ranked, matches)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
