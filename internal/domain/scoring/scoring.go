// Package scoring computes the leaderboard sort score from a
// normalized session record.
package scoring

import "github.com/ormak/typerank/internal/domain/model"

// Signal weights. The score blends accuracy, error-avoidance, speed,
// and sheer output so no single dimension dominates ranking.
const (
	accuracyWeight = 0.4
	mistakeWeight  = 0.2
	speedWeight    = 0.2
	volumeWeight   = 0.2

	mistakeScale = 20
	speedScale   = 10000
	maxMistakes  = 100
)

// Input carries the fields the score depends on. All values must come
// from the same normalized session record to keep cross-entry
// comparisons valid.
type Input struct {
	AccuracyPercent float64
	Mistakes        int
	DurationSeconds int
	WordsTyped      int
}

// Score is the leaderboard sort key. It is total: every input yields a
// finite score, and the arithmetic must stay exactly as written because
// stored entries carry the value forever.
func Score(in Input) float64 {
	accuracyScore := in.AccuracyPercent * accuracyWeight

	remaining := maxMistakes - in.Mistakes
	if remaining < 0 {
		remaining = 0
	}
	mistakeScore := float64(remaining) * mistakeScale * mistakeWeight

	var speedScore float64
	if in.DurationSeconds > 0 {
		speedScore = speedScale / float64(in.DurationSeconds) * speedWeight
	}

	volumeScore := float64(in.WordsTyped) * volumeWeight

	return accuracyScore + mistakeScore + speedScore + volumeScore
}

// FromEntry scores a normalized leaderboard entry.
func FromEntry(e model.LeaderboardEntry) float64 {
	return Score(Input{
		AccuracyPercent: e.AccuracyPercent,
		Mistakes:        e.Mistakes,
		DurationSeconds: e.DurationSeconds,
		WordsTyped:      e.WordsTyped,
	})
}

// FromStats scores a completed session's statistics.
func FromStats(s model.SessionStats) float64 {
	return Score(Input{
		AccuracyPercent: s.AccuracyPercent,
		Mistakes:        s.Mistakes,
		DurationSeconds: s.DurationSeconds,
		WordsTyped:      s.WordsTyped,
	})
}
