package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormak/typerank/internal/domain/model"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typerank.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func entry(player string, mode model.Mode, ts int64) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		PlayerAddress:     player,
		Mode:              mode,
		WordsTyped:        40,
		CorrectWords:      38,
		Mistakes:          2,
		AccuracyBasisPts:  9500,
		AccuracyPercent:   95,
		WordsPerMinute:    72,
		Score:             500,
		DurationSeconds:   60,
		Timestamp:         ts,
		CorrectCharacters: 190,
	}
}

func TestInsertEntry(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	t.Run("stores a valid entry", func(t *testing.T) {
		inserted, err := store.InsertEntry(ctx, entry("0xAAA", model.ModeTimeLimit, 100))
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("reports a duplicate identity as not inserted", func(t *testing.T) {
		inserted, err := store.InsertEntry(ctx, entry("0xAAA", model.ModeTimeLimit, 100))
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("treats address case as the same identity", func(t *testing.T) {
		inserted, err := store.InsertEntry(ctx, entry("0xaaa", model.ModeTimeLimit, 100))
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("separates identities by mode and timestamp", func(t *testing.T) {
		inserted, err := store.InsertEntry(ctx, entry("0xAAA", model.ModeSurvival, 100))
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = store.InsertEntry(ctx, entry("0xAAA", model.ModeTimeLimit, 101))
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("rejects an entry without a player", func(t *testing.T) {
		_, err := store.InsertEntry(ctx, entry("", model.ModeTimeLimit, 100))
		require.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("rejects an entry with an unknown mode", func(t *testing.T) {
		_, err := store.InsertEntry(ctx, entry("0xAAA", model.Mode(42), 100))
		require.ErrorIs(t, err, ErrInvalidEntry)
	})
}

func TestListEntries(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	seed := []model.LeaderboardEntry{
		func() model.LeaderboardEntry {
			e := entry("0xAAA", model.ModeTimeLimit, 100)
			e.WordsPerMinute = 90
			return e
		}(),
		func() model.LeaderboardEntry {
			e := entry("0xBBB", model.ModeTimeLimit, 200)
			e.WordsPerMinute = 70
			e.Score = 600
			return e
		}(),
		func() model.LeaderboardEntry {
			e := entry("0xBBB", model.ModeSurvival, 300)
			e.WordsPerMinute = 70
			e.Score = 400
			return e
		}(),
		func() model.LeaderboardEntry {
			e := entry("0xCCC", model.ModeWordCount, 400)
			e.WordsPerMinute = 70
			e.Score = 600
			return e
		}(),
	}
	for _, e := range seed {
		inserted, err := store.InsertEntry(ctx, e)
		require.NoError(t, err)
		require.True(t, inserted)
	}

	t.Run("orders by wpm, score, then recency", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 4)

		assert.Equal(t, "0xaaa", entries[0].PlayerAddress)
		assert.Equal(t, int64(400), entries[1].Timestamp) // newer of the 600-score pair
		assert.Equal(t, int64(200), entries[2].Timestamp)
		assert.Equal(t, "0xbbb", entries[3].PlayerAddress)
	})

	t.Run("filters by mode", func(t *testing.T) {
		mode := model.ModeSurvival
		entries, err := store.ListEntries(ctx, Filter{Mode: &mode})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, model.ModeSurvival, entries[0].Mode)
	})

	t.Run("filters by player case-insensitively", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, Filter{Player: "0xbbb"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = store.ListEntries(ctx, Filter{Player: "0xBBB"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("applies the inclusive-exclusive time window", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, Filter{SinceTimestamp: 200, UntilTimestamp: 400})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, e := range entries {
			assert.GreaterOrEqual(t, e.Timestamp, int64(200))
			assert.Less(t, e.Timestamp, int64(400))
		}
	})

	t.Run("derives accuracy percent from basis points", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, Filter{Player: "0xaaa"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.InDelta(t, 95.0, entries[0].AccuracyPercent, 1e-9)
	})

	t.Run("returns nothing for an unknown player", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, Filter{Player: "0xnobody"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestCursor(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	t.Run("a never-synced source has no cursor", func(t *testing.T) {
		_, err := store.Cursor(ctx, "monad-testnet")
		require.ErrorIs(t, err, ErrCursorNotFound)
	})

	t.Run("advance then read round-trips", func(t *testing.T) {
		require.NoError(t, store.AdvanceCursor(ctx, "monad-testnet", 42))

		cursor, err := store.Cursor(ctx, "monad-testnet")
		require.NoError(t, err)
		assert.Equal(t, "monad-testnet", cursor.Source)
		assert.Equal(t, uint64(42), cursor.LastSequence)
	})

	t.Run("regressions are ignored", func(t *testing.T) {
		require.NoError(t, store.AdvanceCursor(ctx, "monad-testnet", 10))

		cursor, err := store.Cursor(ctx, "monad-testnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), cursor.LastSequence)
	})

	t.Run("sources advance independently", func(t *testing.T) {
		require.NoError(t, store.AdvanceCursor(ctx, "local", 7))

		cursor, err := store.Cursor(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), cursor.LastSequence)

		cursor, err = store.Cursor(ctx, "monad-testnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), cursor.LastSequence)
	})
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "typerank.db")

	store, err := Open(path)
	require.NoError(t, err)

	inserted, err := store.InsertEntry(ctx, entry("0xAAA", model.ModeTimeLimit, 100))
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, store.AdvanceCursor(ctx, "monad-testnet", 9))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.ListEntries(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	inserted, err = reopened.InsertEntry(ctx, entry("0xaaa", model.ModeTimeLimit, 100))
	require.NoError(t, err)
	assert.False(t, inserted, "identity must survive a reopen")

	cursor, err := reopened.Cursor(ctx, "monad-testnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cursor.LastSequence)
}
