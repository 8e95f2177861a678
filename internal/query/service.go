// Package query serves read-side leaderboard views over the entry
// store. Views are computed per request from stored entries; the store
// holds every entry and the views aggregate, filter, and paginate.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ormak/typerank/internal/adapters/repository"
	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/domain/scoring"
	"github.com/ormak/typerank/pkg/metrics"
)

// Period selects the time window of a leaderboard view.
type Period string

// Supported periods.
const (
	PeriodAll    Period = "all"
	PeriodWeekly Period = "weekly"
)

// ParsePeriod resolves a period key. The empty string means PeriodAll.
func ParsePeriod(key string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "all":
		return PeriodAll, true
	case "weekly":
		return PeriodWeekly, true
	default:
		return "", false
	}
}

// Defaults for pagination.
const (
	defaultLimit = 50
	defaultMax   = 100
)

// Page is one page of a ranked leaderboard view.
type Page struct {
	Entries []model.LeaderboardEntry `json:"entries"`
	// TotalPlayers counts distinct players in the full view, not the
	// page.
	TotalPlayers int    `json:"totalPlayers"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
	Period       Period `json:"period"`
}

// Service answers leaderboard queries.
type Service struct {
	store    repository.Store
	maxLimit int
	now      func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxLimit caps the page size a caller can request.
func WithMaxLimit(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxLimit = max
		}
	}
}

// WithClock overrides the clock used for period windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a query service over the given store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		maxLimit: defaultMax,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Global returns the cross-mode leaderboard: each player's single best
// entry under the ranking order, ranked, then paginated.
func (s *Service) Global(ctx context.Context, period Period, limit, offset int) (Page, error) {
	filter := repository.Filter{SinceTimestamp: s.periodStart(period)}

	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		return Page{}, fmt.Errorf("list entries: %w", err)
	}

	best := bestPerPlayer(entries)
	metrics.UpdateTotalPlayers(len(best))

	limit, offset = s.clampPage(limit, offset)
	return Page{
		Entries:      paginate(best, limit, offset),
		TotalPlayers: len(best),
		Limit:        limit,
		Offset:       offset,
		Period:       period,
	}, nil
}

// ByMode returns the per-mode leaderboard, aggregated to each player's
// best entry in that mode. The daily-challenge board always covers the
// current UTC day only: yesterday's challenge was a different text, so
// its results are not comparable.
func (s *Service) ByMode(ctx context.Context, mode model.Mode, period Period, limit, offset int) (Page, error) {
	filter := repository.Filter{
		Mode:           &mode,
		SinceTimestamp: s.periodStart(period),
	}
	if mode == model.ModeDailyChallenge {
		day := utcDayStart(s.now())
		filter.SinceTimestamp = day.Unix()
		filter.UntilTimestamp = day.AddDate(0, 0, 1).Unix()
	}

	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		return Page{}, fmt.Errorf("list entries: %w", err)
	}

	best := bestPerPlayer(entries)
	limit, offset = s.clampPage(limit, offset)
	return Page{
		Entries:      paginate(best, limit, offset),
		TotalPlayers: len(best),
		Limit:        limit,
		Offset:       offset,
		Period:       period,
	}, nil
}

// ByPlayer returns every stored entry for one player, ranked, without
// per-player aggregation. The address matches case-insensitively.
func (s *Service) ByPlayer(ctx context.Context, address string) ([]model.LeaderboardEntry, error) {
	entries, err := s.store.ListEntries(ctx, repository.Filter{Player: address})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	scoring.SortEntries(entries)
	return entries, nil
}

// periodStart returns the inclusive lower timestamp bound for a
// period, or 0 for no bound.
func (s *Service) periodStart(period Period) int64 {
	if period != PeriodWeekly {
		return 0
	}
	return isoWeekStart(s.now()).Unix()
}

func (s *Service) clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// bestPerPlayer reduces entries to each player's best under the
// ranking order and returns them ranked. Player identity is
// case-insensitive.
func bestPerPlayer(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	best := make(map[string]model.LeaderboardEntry)
	for _, e := range entries {
		player := strings.ToLower(e.PlayerAddress)
		cur, ok := best[player]
		if !ok || scoring.Better(e, cur) {
			best[player] = e
		}
	}

	out := make([]model.LeaderboardEntry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	scoring.SortEntries(out)
	return out
}

func paginate(entries []model.LeaderboardEntry, limit, offset int) []model.LeaderboardEntry {
	if offset >= len(entries) {
		return []model.LeaderboardEntry{}
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}

// isoWeekStart returns Monday 00:00:00 UTC of t's ISO week.
func isoWeekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := utcDayStart(t)
	return day.AddDate(0, 0, -(weekday - 1))
}

func utcDayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
