// Package model contains domain models passed between layers.
package model

import "strings"

// Mode identifies the ruleset governing a typing session. The numeric
// values mirror the on-chain enum and must not be reordered.
type Mode int

// Game modes.
const (
	ModeTimeLimit Mode = iota
	ModeWordCount
	ModeSurvival
	ModeDailyChallenge
	ModeParagraph
	ModePractice
)

// modeKeys maps URL-facing mode keys to Mode values.
var modeKeys = map[string]Mode{
	"time-limit":      ModeTimeLimit,
	"word-count":      ModeWordCount,
	"survival":        ModeSurvival,
	"daily-challenge": ModeDailyChallenge,
	"paragraph":       ModeParagraph,
	"practice":        ModePractice,
}

// ParseMode resolves a mode key like "time-limit" to its Mode.
// Returns false for unknown keys.
func ParseMode(key string) (Mode, bool) {
	m, ok := modeKeys[strings.ToLower(strings.TrimSpace(key))]
	return m, ok
}

// String returns the URL-facing key for the mode.
func (m Mode) String() string {
	switch m {
	case ModeTimeLimit:
		return "time-limit"
	case ModeWordCount:
		return "word-count"
	case ModeSurvival:
		return "survival"
	case ModeDailyChallenge:
		return "daily-challenge"
	case ModeParagraph:
		return "paragraph"
	case ModePractice:
		return "practice"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeTimeLimit && m <= ModePractice
}

// SessionStats is an immutable snapshot derived from a completed
// typing session.
type SessionStats struct {
	Mode              Mode
	WordsTyped        int
	CorrectWords      int
	Mistakes          int
	AccuracyPercent   float64 // 0-100, two decimal places
	DurationSeconds   int
	WordsPerMinute    int
	CorrectCharacters int
	SurvivalLevel     int
	Completed         bool
}

// CompletionEvent is the external ledger's notification that a game
// session finished. Timestamp is the ledger's event time in unix
// seconds; zero means the ledger did not report one.
type CompletionEvent struct {
	Player     string
	SessionID  uint64
	WordsTyped int
	Accuracy   int // basis points
	Timestamp  int64
	Sequence   uint64 // ledger sequence number (block height)
}

// SessionRecord is the full session detail looked up on the ledger by
// (player, sessionID).
type SessionRecord struct {
	Player            string
	Mode              Mode
	WordsTyped        int
	CorrectWords      int
	Mistakes          int
	AccuracyBasisPts  int
	WordsPerMinute    int
	DurationSeconds   int
	EndTime           int64 // unix seconds, authoritative event time
	CorrectCharacters int
	Completed         bool
}

// LeaderboardEntry is a stored, ranked record of one completed session.
// Entries are immutable once written; a re-observation of the same
// underlying event is a duplicate, not an update. Identity for
// de-duplication is (PlayerAddress, Mode, Timestamp).
type LeaderboardEntry struct {
	PlayerAddress     string  `json:"playerAddress"`
	Mode              Mode    `json:"mode"`
	WordsTyped        int     `json:"wordsTyped"`
	CorrectWords      int     `json:"correctWords"`
	Mistakes          int     `json:"mistakes"`
	AccuracyBasisPts  int     `json:"accuracyBasisPoints"`
	AccuracyPercent   float64 `json:"accuracyPercent"`
	WordsPerMinute    int     `json:"wpm"`
	Score             float64 `json:"score"`
	DurationSeconds   int     `json:"durationSeconds"`
	Timestamp         int64   `json:"timestamp"`
	CorrectCharacters int     `json:"correctCharacters"`
}

// Key returns the de-duplication identity of the entry. The address is
// lower-cased because player identity is case-insensitive.
func (e LeaderboardEntry) Key() EntryKey {
	return EntryKey{
		PlayerAddress: strings.ToLower(e.PlayerAddress),
		Mode:          e.Mode,
		Timestamp:     e.Timestamp,
	}
}

// EntryKey is the unique identity of a leaderboard entry.
type EntryKey struct {
	PlayerAddress string
	Mode          Mode
	Timestamp     int64
}

// SyncCursor is the durable bookmark of ingestion progress through the
// external event sequence, keyed by ingestion source. LastSequence is
// monotonically increasing and advanced only after the corresponding
// batch of events has been durably stored.
type SyncCursor struct {
	Source       string
	LastSequence uint64
}
