// Package repository defines the persistent leaderboard store contract
// and its SQLite implementation.
package repository

import (
	"context"

	"github.com/ormak/typerank/internal/domain/model"
)

// Filter narrows ListEntries. Zero values mean "no constraint".
type Filter struct {
	// Mode restricts to a single game mode.
	Mode *model.Mode
	// Player restricts to one address, matched case-insensitively.
	Player string
	// SinceTimestamp is an inclusive unix-seconds lower bound.
	SinceTimestamp int64
	// UntilTimestamp is an exclusive unix-seconds upper bound.
	UntilTimestamp int64
}

// Store provides durable access to leaderboard entries and sync
// cursors. Entry inserts are atomic: readers never observe a partially
// written row.
type Store interface {
	// InsertEntry stores a new entry. Returns false without error when
	// an entry with the same (player, mode, timestamp) identity already
	// exists; duplicates are a normal no-op, not a failure.
	InsertEntry(ctx context.Context, e model.LeaderboardEntry) (bool, error)

	// ListEntries returns entries matching the filter, ordered by the
	// ranking order: wpm desc, score desc, timestamp desc.
	ListEntries(ctx context.Context, f Filter) ([]model.LeaderboardEntry, error)

	// Cursor returns the sync cursor for a source.
	// Returns ErrCursorNotFound when the source has never synced.
	Cursor(ctx context.Context, source string) (model.SyncCursor, error)

	// AdvanceCursor moves the cursor for source up to seq. The cursor
	// is monotonic: a seq at or below the stored value is ignored.
	AdvanceCursor(ctx context.Context, source string, seq uint64) error

	// Close releases the underlying storage.
	Close() error
}
