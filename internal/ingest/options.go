package ingest

import (
	"time"

	"github.com/ormak/typerank/internal/adapters/mq/queue"
)

// Option applies a configuration option to the Ingestor.
type Option func(*Ingestor)

// WithChunkSize bounds how many sequence units one backfill chunk
// covers.
func WithChunkSize(size uint64) Option {
	return func(i *Ingestor) {
		if size > 0 {
			i.chunkSize = size
		}
	}
}

// WithLookback bounds how far below the current height a cold start
// scans.
func WithLookback(lookback uint64) Option {
	return func(i *Ingestor) {
		i.lookback = lookback
	}
}

// WithPollInterval sets the period between backfill passes.
func WithPollInterval(interval time.Duration) Option {
	return func(i *Ingestor) {
		if interval > 0 {
			i.pollInterval = interval
		}
	}
}

// WithQueue overrides the live event queue.
func WithQueue(q queue.Queue) Option {
	return func(i *Ingestor) {
		if q != nil {
			i.live = q
		}
	}
}

// WithClock overrides the wall clock used for fallback timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Ingestor) {
		if now != nil {
			i.now = now
		}
	}
}
