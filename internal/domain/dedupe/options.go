// Package dedupe tracks already-seen leaderboard entry identities.
package dedupe

// Option applies a configuration option to the memory deduper.
type Option func(*memoryDeduper)

// WithMaxSize bounds the number of keys kept in memory. A value of
// zero or below disables eviction entirely.
func WithMaxSize(maxSize int) Option {
	return func(d *memoryDeduper) {
		d.maxSize = maxSize
	}
}
