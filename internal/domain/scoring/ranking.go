package scoring

import (
	"sort"

	"github.com/ormak/typerank/internal/domain/model"
)

// Better reports whether a ranks above b. The order is fixed wherever
// ranking matters: words-per-minute descending, then score descending,
// then timestamp descending (most recent wins ties). Reproducing this
// exact order keeps the leaderboard stable across views and replays.
func Better(a, b model.LeaderboardEntry) bool {
	if a.WordsPerMinute != b.WordsPerMinute {
		return a.WordsPerMinute > b.WordsPerMinute
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Timestamp > b.Timestamp
}

// SortEntries orders entries in place under the ranking order.
func SortEntries(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Better(entries[i], entries[j])
	})
}
