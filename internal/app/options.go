package service

import (
	"time"

	"github.com/ormak/typerank/internal/adapters/ledger"
	"github.com/ormak/typerank/internal/adapters/paragraph"
	"github.com/ormak/typerank/internal/adapters/repository"
	"github.com/ormak/typerank/internal/adapters/signer"
	"github.com/ormak/typerank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-built entry store instead of opening the
// default SQLite database.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath sets the SQLite database location.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithLedgerSource injects the ledger the service ingests from.
func WithLedgerSource(source ledger.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithSigner injects the signing authority.
func WithSigner(sig signer.Signer) Option {
	return func(s *Service) {
		if sig != nil {
			s.signing = sig
		}
	}
}

// WithSigningKey sets the HMAC key for the default signer.
func WithSigningKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.signingKey = []byte(key)
		}
	}
}

// WithQueueSize sets the maximum size of the live event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard page sizes.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithChunkSize bounds one backfill chunk in ledger sequence units.
func WithChunkSize(size uint64) Option {
	return func(s *Service) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithLookback bounds the cold-start scan window.
func WithLookback(lookback uint64) Option {
	return func(s *Service) {
		s.lookback = lookback
	}
}

// WithPollInterval sets the period between backfill passes.
func WithPollInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithParagraphProvider injects a pre-built paragraph session provider.
func WithParagraphProvider(p *paragraph.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.paragraphs = p
		}
	}
}

// WithParagraphSweepInterval sets the period between sweeps of
// abandoned paragraph sessions.
func WithParagraphSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithLedgerCheckInterval sets the ledger health-check period.
func WithLedgerCheckInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.checkInterval = interval
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
