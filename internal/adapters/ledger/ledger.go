// Package ledger defines the contract for the external event source
// that records completed game sessions, plus a supervised connection
// monitor and an in-memory implementation for tests and local play.
package ledger

import (
	"context"
	"errors"

	"github.com/ormak/typerank/internal/domain/model"
)

// Sentinel kinds for ledger errors.
var (
	// ErrUnavailable marks transient upstream failures. Callers retry
	// with backoff and never advance cursors past the failure.
	ErrUnavailable = errors.New("ledger unavailable")

	// ErrSessionNotFound marks a referenced session that does not exist
	// on the ledger. Permanently malformed; never retried.
	ErrSessionNotFound = errors.New("session not found")
)

// Source exposes the ledger operations the ingestor depends on.
type Source interface {
	// Name identifies the source; it keys the sync cursor.
	Name() string

	// Height returns the current sequence height. Also serves as the
	// connection health probe.
	Height(ctx context.Context) (uint64, error)

	// QueryEvents returns completion events with sequence in
	// [from, to], ordered by sequence ascending.
	QueryEvents(ctx context.Context, from, to uint64) ([]model.CompletionEvent, error)

	// SessionDetail looks up the full session record behind an event.
	SessionDetail(ctx context.Context, player string, sessionID uint64) (model.SessionRecord, error)

	// Subscribe registers a handler for new completion events as they
	// occur. The returned Subscription's Detach stops delivery and is
	// safe to call more than once.
	Subscribe(ctx context.Context, handler func(model.CompletionEvent)) (Subscription, error)
}

// Subscription is a handle on a live event feed.
type Subscription interface {
	// Detach stops event delivery. Idempotent.
	Detach()
}
