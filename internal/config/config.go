// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// SourceName identifies the ledger ingestion source; it keys the
	// sync cursor.
	SourceName string `koanf:"source_name"`

	// ChunkSize bounds one backfill chunk, in ledger sequence units.
	ChunkSize uint64 `koanf:"chunk_size"`

	// Lookback bounds how far below the current ledger height a cold
	// start scans.
	Lookback uint64 `koanf:"lookback"`

	// PollIntervalSecs is the period between backfill passes.
	PollIntervalSecs int `koanf:"poll_interval_secs"`

	// QueueSize bounds the in-memory live event queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps leaderboard page sizes.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// LedgerCheckIntervalSecs is the ledger health-check period.
	LedgerCheckIntervalSecs int `koanf:"ledger_check_interval_secs"`

	// SigningKey is the shared secret for result and achievement
	// signatures. Must be set in production.
	SigningKey string `koanf:"signing_key"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		DBPath:                  "data/typerank.db",
		SourceName:              "monad-testnet",
		ChunkSize:               2000,
		Lookback:                2000,
		PollIntervalSecs:        60,
		QueueSize:               10_000,
		DedupeSize:              50_000,
		MaxLeaderboardLimit:     100,
		LedgerCheckIntervalSecs: 15,
		SigningKey:              "dev-signing-key",
	}
}
