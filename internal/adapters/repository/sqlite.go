package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/pkg/metrics"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// A single writer keeps entry inserts atomic under concurrent reads.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leaderboard_entries (
			player_address TEXT NOT NULL,
			mode INTEGER NOT NULL,
			words_typed INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			accuracy_bp INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			score REAL NOT NULL,
			duration_seconds INTEGER NOT NULL,
			timestamp INTEGER NOT NULL,
			correct_characters INTEGER NOT NULL,
			PRIMARY KEY (player_address, mode, timestamp)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_mode_ts ON leaderboard_entries(mode, timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_ts ON leaderboard_entries(timestamp);`,
		`CREATE TABLE IF NOT EXISTS sync_cursors (
			source TEXT PRIMARY KEY,
			last_sequence INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate store: %w", err)
		}
	}
	return nil
}

// InsertEntry stores an entry, treating identity conflicts as a no-op.
func (s *SQLiteStore) InsertEntry(ctx context.Context, e model.LeaderboardEntry) (bool, error) {
	if e.PlayerAddress == "" || !e.Mode.Valid() {
		return false, fmt.Errorf("%w: player=%q mode=%d", ErrInvalidEntry, e.PlayerAddress, e.Mode)
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_entries
			(player_address, mode, words_typed, correct_words, mistakes, accuracy_bp, wpm, score, duration_seconds, timestamp, correct_characters)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player_address, mode, timestamp) DO NOTHING`,
		strings.ToLower(e.PlayerAddress),
		int(e.Mode),
		e.WordsTyped,
		e.CorrectWords,
		e.Mistakes,
		e.AccuracyBasisPts,
		e.WordsPerMinute,
		e.Score,
		e.DurationSeconds,
		e.Timestamp,
		e.CorrectCharacters,
	)
	if err != nil {
		return false, fmt.Errorf("insert entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert entry result: %w", err)
	}
	return affected > 0, nil
}

// ListEntries returns filtered entries in ranking order.
func (s *SQLiteStore) ListEntries(ctx context.Context, f Filter) ([]model.LeaderboardEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	clauses := []string{"1=1"}
	args := []any{}
	if f.Mode != nil {
		clauses = append(clauses, "mode = ?")
		args = append(args, int(*f.Mode))
	}
	if f.Player != "" {
		clauses = append(clauses, "player_address = ?")
		args = append(args, strings.ToLower(f.Player))
	}
	if f.SinceTimestamp > 0 {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, f.SinceTimestamp)
	}
	if f.UntilTimestamp > 0 {
		clauses = append(clauses, "timestamp < ?")
		args = append(args, f.UntilTimestamp)
	}

	query := fmt.Sprintf(`SELECT player_address, mode, words_typed, correct_words, mistakes, accuracy_bp, wpm, score, duration_seconds, timestamp, correct_characters
		FROM leaderboard_entries
		WHERE %s
		ORDER BY wpm DESC, score DESC, timestamp DESC`, strings.Join(clauses, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var mode int
		if err := rows.Scan(
			&e.PlayerAddress, &mode, &e.WordsTyped, &e.CorrectWords, &e.Mistakes,
			&e.AccuracyBasisPts, &e.WordsPerMinute, &e.Score, &e.DurationSeconds,
			&e.Timestamp, &e.CorrectCharacters,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Mode = model.Mode(mode)
		e.AccuracyPercent = float64(e.AccuracyBasisPts) / 100
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Cursor returns the stored cursor for a source.
func (s *SQLiteStore) Cursor(ctx context.Context, source string) (model.SyncCursor, error) {
	var last uint64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_sequence FROM sync_cursors WHERE source = ?`, source,
	).Scan(&last)
	if err == sql.ErrNoRows {
		return model.SyncCursor{}, ErrCursorNotFound
	}
	if err != nil {
		return model.SyncCursor{}, fmt.Errorf("read cursor: %w", err)
	}
	return model.SyncCursor{Source: source, LastSequence: last}, nil
}

// AdvanceCursor moves the cursor forward; regressions are ignored so
// the cursor stays monotonic even if callers race.
func (s *SQLiteStore) AdvanceCursor(ctx context.Context, source string, seq uint64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_cursors (source, last_sequence) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET last_sequence = excluded.last_sequence
		 WHERE excluded.last_sequence > sync_cursors.last_sequence`,
		source, seq,
	)
	if err != nil {
		return fmt.Errorf("advance cursor: %w", err)
	}
	return nil
}
