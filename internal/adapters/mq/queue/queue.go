// Package queue buffers live completion events between the ledger
// subscription and the ingestion pipeline. Enqueue is non-blocking:
// backpressure surfaces as a refusal, never as a stalled subscription
// callback. Events refused here are not lost: the periodic backfill
// re-reads them from the ledger.
package queue

import (
	"context"
	"sync"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/pkg/metrics"
)

const defaultCapacity = 10000

// Event is the payload type flowing through the queue.
type Event = model.CompletionEvent

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds an event. Returns false when the queue is full or
	// closed.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel receiving events as they arrive. The
	// channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close shuts the queue down; afterwards Enqueue refuses and the
	// dequeue channel drains then closes.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// MemoryQueue implements Queue on a buffered channel.
type MemoryQueue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewMemoryQueue creates a queue with configuration options.
func NewMemoryQueue(opts ...Option) *MemoryQueue {
	q := &MemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)
	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds an event without blocking.
func (q *MemoryQueue) Enqueue(ctx context.Context, e Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueDropped()
		return false
	}

	select {
	case q.events <- e:
		metrics.UpdateQueueSize(len(q.events))
		return true
	case <-ctx.Done():
		metrics.RecordQueueDropped()
		return false
	default:
		metrics.RecordQueueDropped()
		return false
	}
}

// Dequeue returns a channel delivering events until the queue closes
// or ctx is canceled.
func (q *MemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for event := range q.events {
			select {
			case out <- event:
				metrics.UpdateQueueSize(len(q.events))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current queue depth.
func (q *MemoryQueue) Len(_ context.Context) int {
	return len(q.events)
}

// Close shuts down the queue. Safe to call once.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *MemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
