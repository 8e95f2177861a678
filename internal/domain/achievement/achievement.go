// Package achievement evaluates which achievements a player's session
// history has unlocked and reconciles them against the externally
// granted set.
package achievement

import "github.com/ormak/typerank/internal/domain/model"

// Achievement IDs. Values are 1-based and mirror the on-chain token ids.
const (
	FirstSteps     = 1
	SpeedDemon     = 2
	Perfectionist  = 3
	MarathonRunner = 4
	Survivor       = 5
	DailyChampion  = 6
)

// Unlock thresholds.
const (
	speedDemonWPM       = 80
	perfectAccuracy     = 100.0
	marathonTotalWords  = 500
	survivorWordsNeeded = 50 // proxy for reaching survival depth
)

// Definition pairs an achievement id with its unlock predicate. Each
// predicate inspects the whole history, so re-evaluation as history
// grows is idempotent.
type Definition struct {
	ID    int
	Key   string
	Name  string
	Check func(sessions []model.SessionStats) bool
}

// Definitions is the ordered achievement list. Order determines the
// order ids are reported in; predicates are independent of each other.
var Definitions = []Definition{
	{
		ID: FirstSteps, Key: "FirstSteps", Name: "First Steps",
		Check: func(sessions []model.SessionStats) bool {
			return len(sessions) > 0
		},
	},
	{
		ID: SpeedDemon, Key: "SpeedDemon", Name: "Speed Demon",
		Check: func(sessions []model.SessionStats) bool {
			for _, s := range sessions {
				if s.WordsPerMinute >= speedDemonWPM {
					return true
				}
			}
			return false
		},
	},
	{
		ID: Perfectionist, Key: "Perfectionist", Name: "Perfectionist",
		Check: func(sessions []model.SessionStats) bool {
			for _, s := range sessions {
				if s.AccuracyPercent == perfectAccuracy {
					return true
				}
			}
			return false
		},
	},
	{
		ID: MarathonRunner, Key: "MarathonRunner", Name: "Marathon Runner",
		Check: func(sessions []model.SessionStats) bool {
			total := 0
			for _, s := range sessions {
				total += s.WordsTyped
			}
			return total >= marathonTotalWords
		},
	},
	{
		ID: Survivor, Key: "Survivor", Name: "Survivor",
		Check: func(sessions []model.SessionStats) bool {
			for _, s := range sessions {
				if s.Mode == model.ModeSurvival && s.WordsTyped >= survivorWordsNeeded {
					return true
				}
			}
			return false
		},
	},
	{
		ID: DailyChampion, Key: "DailyChampion", Name: "Daily Champion",
		Check: func(sessions []model.SessionStats) bool {
			for _, s := range sessions {
				if s.Mode == model.ModeDailyChallenge && s.Completed {
					return true
				}
			}
			return false
		},
	},
}

// Name returns the display name for an achievement id, or "".
func Name(id int) string {
	for _, def := range Definitions {
		if def.ID == id {
			return def.Name
		}
	}
	return ""
}

// Evaluate returns the ids unlocked by the full session history, in
// definition order. Safe to call repeatedly as history grows.
func Evaluate(sessions []model.SessionStats) []int {
	var unlocked []int
	for _, def := range Definitions {
		if def.Check(sessions) {
			unlocked = append(unlocked, def.ID)
		}
	}
	return unlocked
}

// Mintable returns the unlocked ids not present in granted. An id the
// external record has never observed counts the same as one confirmed
// not granted: both are mintable. Already-granted ids are never
// re-reported.
func Mintable(unlocked, granted []int) []int {
	grantedSet := make(map[int]struct{}, len(granted))
	for _, id := range granted {
		grantedSet[id] = struct{}{}
	}

	var mintable []int
	for _, id := range unlocked {
		if _, ok := grantedSet[id]; !ok {
			mintable = append(mintable, id)
		}
	}
	return mintable
}
