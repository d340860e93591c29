// Package selection picks the final lineup from scored players.
package selection

import (
	"sort"

	"github.com/okian/bestxi/internal/domain/model"
)

// DefaultLineupSize is the number of players in a fantasy lineup.
const DefaultLineupSize = 11

// SelectTop returns the names of the k highest scoring players, best first.
// Equal scores keep their input order. Fewer than k players yields all of
// them. scored is not modified.
func SelectTop(scored []model.ScoredPlayer, k int) []string {
	if k <= 0 || len(scored) == 0 {
		return []string{}
	}

	ranked := make([]model.ScoredPlayer, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PredictedScore > ranked[j].PredictedScore
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	names := make([]string, k)
	for i := 0; i < k; i++ {
		names[i] = ranked[i].Player
	}
	return names
}
