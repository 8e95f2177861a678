// Package service wires the core components behind the HTTP API:
// store, de-duplication, ingestion, queries, paragraph sessions,
// achievements, and the signing authority. All dependencies are
// explicit; nothing reaches for ambient singletons.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ormak/typerank/internal/adapters/ledger"
	eventqueue "github.com/ormak/typerank/internal/adapters/mq/queue"
	"github.com/ormak/typerank/internal/adapters/paragraph"
	"github.com/ormak/typerank/internal/adapters/repository"
	"github.com/ormak/typerank/internal/adapters/signer"
	"github.com/ormak/typerank/internal/domain/achievement"
	"github.com/ormak/typerank/internal/domain/dedupe"
	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/ingest"
	"github.com/ormak/typerank/internal/query"
	"github.com/ormak/typerank/pkg/logger"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrNotUnlocked  = errors.New("achievement not unlocked")
	ErrAlreadyMined = errors.New("achievement already minted")
)

// Service implements the API dependencies for the typing leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	source     ledger.Source
	ingestor   *ingest.Ingestor
	monitor    *ledger.Monitor
	queries    *query.Service
	paragraphs *paragraph.Provider
	signing    signer.Signer

	// Configuration
	dbPath        string
	queueSize     int
	dedupeSize    int
	maxLimit      int
	chunkSize     uint64
	lookback      uint64
	pollInterval  time.Duration
	checkInterval time.Duration
	sweepInterval time.Duration
	signingKey    []byte

	// minted tracks achievement signatures already issued, per player.
	// The on-chain grant record is authoritative; this guards against
	// double-signing within one process lifetime.
	minted map[string]map[int]struct{}

	// State
	started   bool
	sweepStop chan struct{}
	sweepDone chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:        "data/typerank.db",
		queueSize:     10_000,
		dedupeSize:    50_000,
		maxLimit:      100,
		chunkSize:     2000,
		lookback:      2000,
		pollInterval:  60 * time.Second,
		checkInterval: 15 * time.Second,
		sweepInterval: time.Minute,
		signingKey:    []byte("dev-signing-key"),
		minted:        make(map[string]map[int]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting typing leaderboard service...")

	if s.store == nil {
		store, err := repository.Open(s.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}
	if s.source == nil {
		s.source = ledger.NewMemory("local")
		s.logger.Warn(ctx, "no ledger source configured, using in-memory ledger")
	}
	if s.signing == nil {
		hm, err := signer.NewHMAC(s.signingKey)
		if err != nil {
			return fmt.Errorf("build signer: %w", err)
		}
		s.signing = hm
	}

	s.deduper = dedupe.NewMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.queries = query.New(s.store, query.WithMaxLimit(s.maxLimit))
	if s.paragraphs == nil {
		s.paragraphs = paragraph.NewProvider()
	}
	s.sweepStop = make(chan struct{})
	s.sweepDone = make(chan struct{})
	go s.runParagraphSweeper(s.paragraphs)

	s.ingestor = ingest.New(s.source, s.store, s.deduper,
		ingest.WithQueue(s.eventQueue),
		ingest.WithChunkSize(s.chunkSize),
		ingest.WithLookback(s.lookback),
		ingest.WithPollInterval(s.pollInterval),
	)
	if err := s.ingestor.Start(ctx); err != nil {
		return fmt.Errorf("start ingestor: %w", err)
	}

	s.monitor = ledger.NewMonitor(s.source, ledger.WithCheckInterval(s.checkInterval))
	s.monitor.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "typing leaderboard service started",
		logger.String("source", s.source.Name()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping typing leaderboard service...")

	if s.monitor != nil {
		s.monitor.Stop()
	}
	if s.ingestor != nil {
		s.ingestor.Stop()
	}
	if s.sweepStop != nil {
		close(s.sweepStop)
		<-s.sweepDone
		s.sweepStop = nil
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "typing leaderboard service stopped")
}

// GlobalLeaderboard returns the cross-mode leaderboard page.
func (s *Service) GlobalLeaderboard(ctx context.Context, period query.Period, limit, offset int) (query.Page, error) {
	q, err := s.queryService()
	if err != nil {
		return query.Page{}, err
	}
	return q.Global(ctx, period, limit, offset)
}

// ModeLeaderboard returns the per-mode leaderboard page.
func (s *Service) ModeLeaderboard(ctx context.Context, mode model.Mode, period query.Period, limit, offset int) (query.Page, error) {
	q, err := s.queryService()
	if err != nil {
		return query.Page{}, err
	}
	return q.ByMode(ctx, mode, period, limit, offset)
}

// PlayerEntries returns every stored entry for a player, ranked.
func (s *Service) PlayerEntries(ctx context.Context, address string) ([]model.LeaderboardEntry, error) {
	q, err := s.queryService()
	if err != nil {
		return nil, err
	}
	return q.ByPlayer(ctx, address)
}

// StartParagraph issues a paragraph session.
func (s *Service) StartParagraph(_ context.Context, timeLimit int) (paragraph.Session, error) {
	p, err := s.paragraphProvider()
	if err != nil {
		return paragraph.Session{}, err
	}
	return p.Start(timeLimit)
}

// SubmitParagraph scores a paragraph submission.
func (s *Service) SubmitParagraph(_ context.Context, sessionID, typed string) (paragraph.Result, error) {
	p, err := s.paragraphProvider()
	if err != nil {
		return paragraph.Result{}, err
	}
	return p.Submit(sessionID, typed)
}

// Achievements evaluates a player's unlocked achievements from their
// stored session history and reports which are already minted.
func (s *Service) Achievements(ctx context.Context, address string) (unlocked, minted []int, err error) {
	q, err := s.queryService()
	if err != nil {
		return nil, nil, err
	}

	entries, err := q.ByPlayer(ctx, address)
	if err != nil {
		return nil, nil, err
	}

	unlocked = achievement.Evaluate(entriesToStats(entries))
	minted = s.mintedIDs(address)
	return unlocked, minted, nil
}

// SignAchievementMint re-validates that the achievement is unlocked and
// not yet minted, then signs the grant. An invalid request is refused;
// authorization failures are deliberate, not errors to retry.
func (s *Service) SignAchievementMint(ctx context.Context, address string, achievementID int) (string, error) {
	unlocked, minted, err := s.Achievements(ctx, address)
	if err != nil {
		return "", err
	}

	if !containsID(unlocked, achievementID) {
		return "", ErrNotUnlocked
	}
	if containsID(minted, achievementID) {
		return "", ErrAlreadyMined
	}

	sig, err := s.signing.SignAchievement(address, achievementID)
	if err != nil {
		return "", err
	}

	s.recordMinted(address, achievementID)
	s.logger.Info(ctx, "achievement mint signed",
		logger.String("player", address),
		logger.Int("achievementID", achievementID),
		logger.String("name", achievement.Name(achievementID)),
	)
	return sig, nil
}

// SignGameResult signs a session result for on-chain submission.
func (s *Service) SignGameResult(_ context.Context, result signer.GameResult) (string, error) {
	s.mu.RLock()
	signing := s.signing
	started := s.started
	s.mu.RUnlock()

	if !started {
		return "", ErrNotStarted
	}
	return signing.SignGameResult(result)
}

// LedgerConnected reports the monitor's view of the ledger connection.
func (s *Service) LedgerConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitor != nil && s.monitor.Connected()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"queueSize":  s.queueSize,
		"dedupeSize": s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		stats["queueLength"] = s.eventQueue.Len(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
		stats["ledgerConnected"] = s.monitor.Connected()
		stats["source"] = s.source.Name()
		stats["activeParagraphs"] = s.paragraphs.ActiveSessions()
	}

	return stats
}

// runParagraphSweeper drops abandoned paragraph sessions on a timer so
// sessions started but never submitted do not accumulate.
func (s *Service) runParagraphSweeper(p *paragraph.Provider) {
	defer close(s.sweepDone)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.sweepStop:
			return
		case <-ticker.C:
			if removed := p.Sweep(); removed > 0 {
				s.logger.Debug(context.Background(), "swept abandoned paragraph sessions",
					logger.Int("removed", removed),
				)
			}
		}
	}
}

func (s *Service) queryService() (*query.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.queries, nil
}

func (s *Service) paragraphProvider() (*paragraph.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.paragraphs, nil
}

func (s *Service) mintedIDs(address string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int
	for id := range s.minted[strings.ToLower(address)] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Service) recordMinted(address string, achievementID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(address)
	if s.minted[key] == nil {
		s.minted[key] = make(map[int]struct{})
	}
	s.minted[key][achievementID] = struct{}{}
}

// entriesToStats projects stored entries into the session shape the
// achievement predicates evaluate. Stored entries are completed
// sessions by definition.
func entriesToStats(entries []model.LeaderboardEntry) []model.SessionStats {
	stats := make([]model.SessionStats, len(entries))
	for i, e := range entries {
		stats[i] = model.SessionStats{
			Mode:              e.Mode,
			WordsTyped:        e.WordsTyped,
			CorrectWords:      e.CorrectWords,
			Mistakes:          e.Mistakes,
			AccuracyPercent:   e.AccuracyPercent,
			DurationSeconds:   e.DurationSeconds,
			WordsPerMinute:    e.WordsPerMinute,
			CorrectCharacters: e.CorrectCharacters,
			Completed:         true,
		}
	}
	return stats
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
