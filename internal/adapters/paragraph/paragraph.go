// Package paragraph serves paragraph-mode texts and tracks in-flight
// paragraph sessions. Texts rotate daily; sessions live in memory and
// are single-use, consumed on submission.
package paragraph

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ormak/typerank/internal/domain/scoring"
	"github.com/ormak/typerank/internal/domain/session"
)

// Sentinel kinds for paragraph session errors.
var (
	ErrInvalidTimeLimit = errors.New("paragraph: invalid time limit")
	ErrSessionNotFound  = errors.New("paragraph: session not found")
	ErrSessionExpired   = errors.New("paragraph: session expired")
)

// validTimeLimits are the accepted paragraph durations in seconds.
var validTimeLimits = map[int]struct{}{
	15: {}, 30: {}, 45: {}, 60: {}, 120: {}, 180: {},
}

// ValidTimeLimit reports whether seconds is an accepted paragraph
// duration.
func ValidTimeLimit(seconds int) bool {
	_, ok := validTimeLimits[seconds]
	return ok
}

// expiryGrace absorbs network latency between the client-side timer
// running out and the submission arriving.
const expiryGrace = 10 * time.Second

// Session is an issued paragraph challenge awaiting submission.
type Session struct {
	ID        string `json:"sessionId"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
	TimeLimit int    `json:"timeLimit"`
}

// Result is the server-computed outcome of a paragraph submission.
type Result struct {
	Metrics        session.TextMetrics `json:"metrics"`
	WordsPerMinute int                 `json:"wpm"`
	Score          float64             `json:"score"`
	DurationSecs   int                 `json:"durationSeconds"`
}

type activeSession struct {
	text      string
	timeLimit int
	startedAt time.Time
}

// Provider issues paragraph sessions and scores their submissions.
type Provider struct {
	texts []string
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]activeSession
}

// Option applies a configuration option to the Provider.
type Option func(*Provider)

// WithClock overrides the clock used for rotation and expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithTexts overrides the rotation pool.
func WithTexts(texts []string) Option {
	return func(p *Provider) {
		if len(texts) > 0 {
			p.texts = texts
		}
	}
}

// NewProvider creates a provider with the built-in text pool.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		texts:    texts,
		now:      time.Now,
		sessions: make(map[string]activeSession),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TextOfDay returns the rotation text for the given date. Rotation is
// by day of year so every instance serves the same text without
// coordination.
func (p *Provider) TextOfDay(date time.Time) string {
	return p.texts[(date.UTC().YearDay()-1)%len(p.texts)]
}

// Start issues a new paragraph session with today's text.
func (p *Provider) Start(timeLimit int) (Session, error) {
	if !ValidTimeLimit(timeLimit) {
		return Session{}, ErrInvalidTimeLimit
	}

	now := p.now()
	text := p.TextOfDay(now)
	id := uuid.NewString()

	p.mu.Lock()
	p.sessions[id] = activeSession{
		text:      text,
		timeLimit: timeLimit,
		startedAt: now,
	}
	p.mu.Unlock()

	return Session{
		ID:        id,
		Text:      text,
		WordCount: len(strings.Fields(text)),
		TimeLimit: timeLimit,
	}, nil
}

// Submit scores the typed text against the session's original and
// consumes the session. Submissions past the time limit plus a small
// grace period are refused.
func (p *Provider) Submit(sessionID, typed string) (Result, error) {
	p.mu.Lock()
	active, ok := p.sessions[sessionID]
	if ok {
		delete(p.sessions, sessionID)
	}
	p.mu.Unlock()

	if !ok {
		return Result{}, ErrSessionNotFound
	}

	elapsed := p.now().Sub(active.startedAt)
	limit := time.Duration(active.timeLimit)*time.Second + expiryGrace
	if elapsed > limit {
		return Result{}, ErrSessionExpired
	}

	metrics := session.CompareTexts(active.text, typed)

	duration := int(math.Round(elapsed.Seconds()))
	if duration < 1 {
		duration = 1
	}
	if duration > active.timeLimit {
		duration = active.timeLimit
	}

	wpm := int(math.Round(float64(metrics.CorrectCharacters) / 5 / (float64(duration) / 60)))
	score := scoring.Score(scoring.Input{
		AccuracyPercent: metrics.AccuracyPercent,
		Mistakes:        metrics.Mistakes,
		DurationSeconds: duration,
		WordsTyped:      metrics.WordsTyped,
	})

	return Result{
		Metrics:        metrics,
		WordsPerMinute: wpm,
		Score:          score,
		DurationSecs:   duration,
	}, nil
}

// ActiveSessions returns the number of issued, unsubmitted sessions.
func (p *Provider) ActiveSessions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// Sweep drops sessions whose time limit passed long ago. Called
// periodically so abandoned sessions do not accumulate.
func (p *Provider) Sweep() int {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for id, active := range p.sessions {
		limit := time.Duration(active.timeLimit)*time.Second + expiryGrace
		if now.Sub(active.startedAt) > limit {
			delete(p.sessions, id)
			removed++
		}
	}
	return removed
}
