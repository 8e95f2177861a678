// Package queue buffers live completion events for ingestion.
package queue

// Option applies a configuration option to the MemoryQueue.
type Option func(*MemoryQueue)

// WithCapacity bounds the number of buffered events.
func WithCapacity(capacity int) Option {
	return func(q *MemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}
