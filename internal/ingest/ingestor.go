// Package ingest turns external completion events into durable
// leaderboard entries: validate, normalize, de-duplicate, store. The
// same pipeline serves chunked historical backfill and the live
// subscription; redeliveries and races between the two resolve at the
// de-duplication check, never by locking.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ormak/typerank/internal/adapters/ledger"
	"github.com/ormak/typerank/internal/adapters/mq/queue"
	"github.com/ormak/typerank/internal/adapters/repository"
	"github.com/ormak/typerank/internal/domain/dedupe"
	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/domain/scoring"
	"github.com/ormak/typerank/pkg/logger"
	"github.com/ormak/typerank/pkg/metrics"
)

// Defaults. Chunk and lookback sizes are in ledger sequence units.
const (
	defaultChunkSize    = 2000
	defaultLookback     = 2000
	defaultPollInterval = 60 * time.Second
)

// Ingestor drives the ingestion pipeline for one ledger source.
// Processing within the pipeline is sequential; it may run concurrently
// with read queries because every entry insert is atomic.
type Ingestor struct {
	source  ledger.Source
	store   repository.Store
	deduper dedupe.Deduper
	live    queue.Queue

	chunkSize    uint64
	lookback     uint64
	pollInterval time.Duration
	now          func() time.Time

	mu           sync.Mutex
	started      bool
	subscription ledger.Subscription

	stopOnce sync.Once
	stopCh   chan struct{}
	liveDone chan struct{}
	pollDone chan struct{}

	logger logger.Logger
}

// New creates an ingestor with configuration options.
func New(source ledger.Source, store repository.Store, deduper dedupe.Deduper, opts ...Option) *Ingestor {
	i := &Ingestor{
		source:       source,
		store:        store,
		deduper:      deduper,
		chunkSize:    defaultChunkSize,
		lookback:     defaultLookback,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		stopCh:       make(chan struct{}),
		liveDone:     make(chan struct{}),
		pollDone:     make(chan struct{}),
		logger:       logger.Get().Named("ingest"),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.live == nil {
		i.live = queue.NewMemoryQueue()
	}
	return i
}

// Start attaches the live subscription and launches the pipeline and
// the periodic backfill loop. Returns an error only when the initial
// subscription cannot be established; backfill failures are retried on
// schedule instead.
func (i *Ingestor) Start(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.started {
		return nil
	}

	sub, err := i.source.Subscribe(ctx, func(e model.CompletionEvent) {
		// Never block the ledger callback; a refused event is
		// recovered by the next backfill pass.
		if !i.live.Enqueue(ctx, e) {
			i.logger.Warn(ctx, "live queue refused event",
				logger.String("player", e.Player),
				logger.Uint64("sequence", e.Sequence),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("attach live subscription: %w", err)
	}
	i.subscription = sub

	go i.runLive(ctx)
	go i.runBackfill(ctx)

	i.started = true
	i.logger.Info(ctx, "ingestor started",
		logger.String("source", i.source.Name()),
		logger.Uint64("chunkSize", i.chunkSize),
		logger.Uint64("lookback", i.lookback),
	)
	return nil
}

// Stop detaches the subscription and waits for both loops. Idempotent;
// in-flight store operations complete before the loops exit.
func (i *Ingestor) Stop() {
	i.mu.Lock()
	sub := i.subscription
	started := i.started
	i.mu.Unlock()

	if sub != nil {
		sub.Detach()
	}

	i.stopOnce.Do(func() {
		close(i.stopCh)
		_ = i.live.Close()
	})

	if started {
		<-i.liveDone
		<-i.pollDone
	}
}

// runLive drains the live queue through the pipeline, one event at a
// time.
func (i *Ingestor) runLive(ctx context.Context) {
	defer close(i.liveDone)

	events := i.live.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-i.stopCh:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := i.Process(ctx, event); err != nil {
				// Transient; the event stays on the ledger and the
				// next backfill pass re-reads it.
				i.logger.Error(ctx, "live event failed, deferring to backfill",
					logger.Uint64("sequence", event.Sequence),
					logger.Error(err),
				)
			}
		}
	}
}

// runBackfill runs a backfill pass immediately, then on every tick.
func (i *Ingestor) runBackfill(ctx context.Context) {
	defer close(i.pollDone)

	if err := i.Backfill(ctx); err != nil {
		i.logger.Warn(ctx, "backfill pass failed", logger.Error(err))
	}

	ticker := time.NewTicker(i.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-i.stopCh:
			return
		case <-ticker.C:
			if err := i.Backfill(ctx); err != nil {
				i.logger.Warn(ctx, "backfill pass failed", logger.Error(err))
			}
		}
	}
}

// Backfill replays ledger history from the sync cursor to the current
// height in bounded chunks. The cursor advances only after a chunk is
// fully stored; any failure aborts the pass with the cursor unchanged,
// so the next pass redelivers the chunk and de-duplication absorbs the
// overlap. On a cold start the scan begins a bounded lookback below
// the current height rather than at genesis.
func (i *Ingestor) Backfill(ctx context.Context) error {
	height, err := i.source.Height(ctx)
	if err != nil {
		metrics.RecordBackfillError()
		return fmt.Errorf("read ledger height: %w", err)
	}

	from, err := i.resumePoint(ctx, height)
	if err != nil {
		metrics.RecordBackfillError()
		return err
	}
	if from > height {
		return nil
	}

	for from <= height {
		upper := from + i.chunkSize - 1
		if upper > height {
			upper = height
		}

		if err := i.processChunk(ctx, from, upper); err != nil {
			metrics.RecordBackfillError()
			return err
		}

		if err := i.store.AdvanceCursor(ctx, i.source.Name(), upper); err != nil {
			metrics.RecordBackfillError()
			return fmt.Errorf("advance cursor: %w", err)
		}
		metrics.RecordBackfillChunk()
		metrics.UpdateCursorHeight(upper)

		i.logger.Debug(ctx, "backfill chunk stored",
			logger.Uint64("from", from),
			logger.Uint64("to", upper),
		)
		from = upper + 1
	}
	return nil
}

// resumePoint returns the first sequence the pass should read.
func (i *Ingestor) resumePoint(ctx context.Context, height uint64) (uint64, error) {
	cursor, err := i.store.Cursor(ctx, i.source.Name())
	if err == nil {
		return cursor.LastSequence + 1, nil
	}
	if !errors.Is(err, repository.ErrCursorNotFound) {
		return 0, fmt.Errorf("read cursor: %w", err)
	}

	// Cold start: bounded lookback, not genesis. Events older than the
	// window are permanently out of scope, which is acceptable for a
	// leaderboard.
	if height <= i.lookback {
		return 0, nil
	}
	return height - i.lookback, nil
}

// processChunk pipes every event in [from, to] through the pipeline.
// Malformed events are dropped and logged inside Process; any returned
// error is transient and aborts the chunk.
func (i *Ingestor) processChunk(ctx context.Context, from, to uint64) error {
	events, err := i.source.QueryEvents(ctx, from, to)
	if err != nil {
		return fmt.Errorf("query events [%d,%d]: %w", from, to, err)
	}

	for _, event := range events {
		if err := i.Process(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Process runs one completion event through
// validate -> normalize -> dedup -> store.
//
// A nil return means the event is settled: stored, skipped as a
// duplicate, or dropped as permanently malformed. A non-nil return is
// transient and the caller must not advance past the event.
func (i *Ingestor) Process(ctx context.Context, event model.CompletionEvent) error {
	record, err := i.source.SessionDetail(ctx, event.Player, event.SessionID)
	if errors.Is(err, ledger.ErrSessionNotFound) {
		i.drop(ctx, event, "missing_session")
		return nil
	}
	if err != nil {
		return fmt.Errorf("session detail %s/%d: %w", event.Player, event.SessionID, err)
	}

	if reason, ok := validate(record); !ok {
		i.drop(ctx, event, reason)
		return nil
	}

	entry := i.normalize(event, record)

	if i.deduper.SeenAndRecord(ctx, entry.Key()) {
		metrics.RecordEventDuplicate()
		return nil
	}

	inserted, err := i.store.InsertEntry(ctx, entry)
	if err != nil {
		// Let a retry of the same event reach the store again.
		i.deduper.Unrecord(ctx, entry.Key())
		return fmt.Errorf("store entry: %w", err)
	}
	if !inserted {
		metrics.RecordEventDuplicate()
		return nil
	}

	metrics.RecordEventIngested()
	i.logger.Debug(ctx, "entry stored",
		logger.String("player", entry.PlayerAddress),
		logger.String("mode", entry.Mode.String()),
		logger.Int64("timestamp", entry.Timestamp),
	)
	return nil
}

// validate checks upstream session data before normalization.
// Rejections are permanent: retrying a malformed record cannot succeed.
func validate(record model.SessionRecord) (string, bool) {
	switch {
	case record.Player == "":
		return "missing_player", false
	case !record.Completed:
		return "incomplete_session", false
	case record.WordsTyped <= 0 || record.DurationSeconds <= 0 || record.WordsPerMinute <= 0:
		return "invalid_metrics", false
	case !record.Mode.Valid():
		return "unknown_mode", false
	}
	return "", true
}

// normalize maps a validated session record into entry shape and
// computes the derived score. The authoritative timestamp is the
// ledger's event time in seconds; wall-clock seconds are a last resort
// when the ledger reported none.
func (i *Ingestor) normalize(event model.CompletionEvent, record model.SessionRecord) model.LeaderboardEntry {
	timestamp := record.EndTime
	if timestamp == 0 {
		timestamp = event.Timestamp
	}
	if timestamp == 0 {
		timestamp = i.now().Unix()
	}

	entry := model.LeaderboardEntry{
		PlayerAddress:     record.Player,
		Mode:              record.Mode,
		WordsTyped:        record.WordsTyped,
		CorrectWords:      record.CorrectWords,
		Mistakes:          record.Mistakes,
		AccuracyBasisPts:  record.AccuracyBasisPts,
		AccuracyPercent:   float64(record.AccuracyBasisPts) / 100,
		WordsPerMinute:    record.WordsPerMinute,
		DurationSeconds:   record.DurationSeconds,
		Timestamp:         timestamp,
		CorrectCharacters: record.CorrectCharacters,
	}
	entry.Score = scoring.FromEntry(entry)
	return entry
}

func (i *Ingestor) drop(ctx context.Context, event model.CompletionEvent, reason string) {
	metrics.RecordEventDropped(reason)
	i.logger.Warn(ctx, "dropping malformed event",
		logger.String("player", event.Player),
		logger.Uint64("sessionID", event.SessionID),
		logger.Uint64("sequence", event.Sequence),
		logger.String("reason", reason),
	)
}
