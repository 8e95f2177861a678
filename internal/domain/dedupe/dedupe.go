// Package dedupe tracks already-seen leaderboard entry identities so
// redelivered ledger events can be skipped before touching the store.
// It is a fast path only: the store's unique key remains the
// authoritative duplicate check.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ormak/typerank/internal/domain/model"
)

// Deduper records seen entry keys for idempotent re-ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key model.EntryKey) bool

	// Unrecord forgets a key so the event can be retried. Used when an
	// event was marked seen but failed to store.
	Unrecord(ctx context.Context, key model.EntryKey)

	Size() int64
}

// memoryDeduper is a bounded in-memory Deduper. When the bound is
// reached the oldest recorded key is evicted; an evicted duplicate then
// falls through to the store's unique-key check, which stays correct.
type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[model.EntryKey]struct{}
	order   []model.EntryKey // insertion order, oldest first
	maxSize int              // 0 or negative means unbounded
	size    atomic.Int64
}

// NewMemoryDeduper creates a deduper with configuration options.
func NewMemoryDeduper(opts ...Option) Deduper {
	d := &memoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[model.EntryKey]struct{})
	return d
}

func (d *memoryDeduper) SeenAndRecord(_ context.Context, key model.EntryKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	d.seen[key] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, key)
	}
	d.size.Add(1)
	return false
}

func (d *memoryDeduper) Unrecord(_ context.Context, key model.EntryKey) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; !exists {
		return
	}
	delete(d.seen, key)
	d.size.Add(-1)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// evictOldest drops the earliest still-recorded key. Must be called
// with d.mu held.
func (d *memoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		oldest := d.order[0]
		d.order = d.order[1:]
		if _, exists := d.seen[oldest]; exists {
			delete(d.seen, oldest)
			d.size.Add(-1)
			return
		}
	}
}

func (d *memoryDeduper) Size() int64 {
	return d.size.Load()
}
