// Package session implements the deterministic typing-session state
// machine: per-word submissions in, progress and final statistics out.
// It owns no rendering or networking concerns.
package session

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/domain/words"
)

// Sentinel error kinds for session operations.
var (
	ErrSessionCompleted = errors.New("session already completed")
	ErrInvalidConfig    = errors.New("invalid session config")
)

// Defaults.
const (
	openEndedWordCount  = 100 // initial batch for modes ended by elapsed time
	survivalMaxMistakes = 3
	charsPerWord        = 5 // standard WPM normalization
)

// Config carries the per-mode session parameters.
type Config struct {
	// WordCount is the target length for word-count mode.
	WordCount int
	// TimeLimit bounds time-limit and daily-challenge play, in seconds.
	// The engine itself never polls the clock; callers end those modes
	// externally via ForceComplete.
	TimeLimit int
	// Date keys the daily challenge (YYYY-MM-DD).
	Date string
	// ParagraphText is the externally supplied text for paragraph mode.
	ParagraphText string
}

// TypedWord is one submission in the session log.
type TypedWord struct {
	Expected    string
	Typed       string
	Correct     bool
	TimestampMs int64
}

// Progress is a point-in-time snapshot of session state.
type Progress struct {
	CurrentWordIndex  int
	TotalWords        int // -1 while the word list is open-ended
	CorrectWords      int
	CorrectCharacters int
	Mistakes          int
	AccuracyPercent   float64
	ElapsedSeconds    float64
}

// Result reports the outcome of a single word submission.
type Result struct {
	Correct   bool
	Completed bool
	GameOver  bool
	NextWord  string
	Progress  Progress
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithGenerator overrides the word generator, e.g. to seed it.
func WithGenerator(g *words.Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.gen = g
		}
	}
}

// Engine is the single-owner state machine for one play-through.
// It is cooperative state for one active game instance and is not safe
// for concurrent use.
type Engine struct {
	mode   model.Mode
	config Config

	words             []string
	currentWordIndex  int
	typedWords        []TypedWord
	mistakes          int
	correctWords      int
	correctCharacters int

	startTime     time.Time
	endTime       time.Time
	timerStarted  bool
	completed     bool
	survivalLevel int

	gen *words.Generator
	now func() time.Time
}

// New builds an engine and populates its word sequence for the mode.
// The start timestamp is latched on the first submission, never here,
// so idle time before typing does not count against the player.
func New(mode model.Mode, cfg Config, opts ...Option) (*Engine, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, mode)
	}

	e := &Engine{
		mode:   mode,
		config: cfg,
		gen:    words.NewGenerator(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	switch mode {
	case model.ModeTimeLimit, model.ModePractice:
		e.words = e.gen.Sample(openEndedWordCount, words.Mixed)
	case model.ModeWordCount:
		if cfg.WordCount <= 0 {
			return nil, fmt.Errorf("%w: word count must be positive", ErrInvalidConfig)
		}
		e.words = e.gen.Sample(cfg.WordCount, words.Mixed)
	case model.ModeSurvival:
		e.survivalLevel = 1
		e.words = e.gen.SurvivalBatch(e.survivalLevel)
	case model.ModeDailyChallenge:
		if cfg.Date == "" {
			return nil, fmt.Errorf("%w: daily challenge requires a date", ErrInvalidConfig)
		}
		challenge := words.GenerateDaily(cfg.Date)
		e.words = challenge.Words
		e.config.TimeLimit = challenge.TimeLimit
	case model.ModeParagraph:
		text := strings.TrimSpace(cfg.ParagraphText)
		if text == "" {
			return nil, fmt.Errorf("%w: paragraph mode requires text", ErrInvalidConfig)
		}
		e.words = strings.Fields(text)
	}

	return e, nil
}

// SubmitWord applies one typed word to the session. Correctness is a
// case-insensitive exact match against the expected word at the current
// index; the index only advances on a match.
func (e *Engine) SubmitWord(typed string) (Result, error) {
	if e.completed {
		return Result{}, ErrSessionCompleted
	}

	if !e.timerStarted {
		e.startTime = e.now()
		e.timerStarted = true
	}

	expected := e.words[e.currentWordIndex]
	correct := strings.EqualFold(strings.TrimSpace(typed), expected)

	e.typedWords = append(e.typedWords, TypedWord{
		Expected:    expected,
		Typed:       typed,
		Correct:     correct,
		TimestampMs: e.now().UnixMilli(),
	})

	if correct {
		e.correctWords++
		e.correctCharacters += len(expected)
		e.currentWordIndex++
	} else {
		e.mistakes++
		if e.mode == model.ModeSurvival && e.mistakes >= survivalMaxMistakes {
			e.complete()
			return Result{GameOver: true, Completed: true, Progress: e.Progress()}, nil
		}
	}

	if e.mode == model.ModeWordCount && e.currentWordIndex >= e.config.WordCount {
		e.complete()
		return Result{Correct: correct, Completed: true, Progress: e.Progress()}, nil
	}

	if (e.mode == model.ModeDailyChallenge || e.mode == model.ModeParagraph) && e.currentWordIndex >= len(e.words) {
		e.complete()
		return Result{Correct: correct, Completed: true, Progress: e.Progress()}, nil
	}

	// Survival grows its word list batch by batch instead of ending.
	if e.mode == model.ModeSurvival && e.currentWordIndex >= len(e.words) {
		e.survivalLevel++
		e.words = append(e.words, e.gen.SurvivalBatch(e.survivalLevel)...)
	}

	// Time-limit and practice sessions end on the clock, never here, so
	// the word list must outlast any typing pace.
	if (e.mode == model.ModeTimeLimit || e.mode == model.ModePractice) && e.currentWordIndex >= len(e.words) {
		e.words = append(e.words, e.gen.Sample(openEndedWordCount, words.Mixed)...)
	}

	return Result{
		Correct:  correct,
		NextWord: e.words[e.currentWordIndex],
		Progress: e.Progress(),
	}, nil
}

// ForceComplete ends the session from outside the submission path.
// Time-limit and practice modes have no natural end inside SubmitWord;
// the owner ends them when the clock runs out. Safe to call repeatedly.
func (e *Engine) ForceComplete() {
	if !e.completed {
		e.complete()
	}
}

func (e *Engine) complete() {
	e.completed = true
	e.endTime = e.now()
}

// Completed reports whether the session has ended.
func (e *Engine) Completed() bool { return e.completed }

// CurrentWord returns the expected word at the current index, or ""
// when the list is exhausted.
func (e *Engine) CurrentWord() string {
	if e.currentWordIndex >= len(e.words) {
		return ""
	}
	return e.words[e.currentWordIndex]
}

// SurvivalLevel returns the current survival level (0 outside survival).
func (e *Engine) SurvivalLevel() int { return e.survivalLevel }

// Words returns the current target word sequence.
func (e *Engine) Words() []string { return e.words }

// Progress returns a snapshot of the session counters.
func (e *Engine) Progress() Progress {
	total := len(e.words)
	if e.mode == model.ModeTimeLimit || e.mode == model.ModePractice {
		total = -1
	}
	return Progress{
		CurrentWordIndex:  e.currentWordIndex,
		TotalWords:        total,
		CorrectWords:      e.correctWords,
		CorrectCharacters: e.correctCharacters,
		Mistakes:          e.mistakes,
		AccuracyPercent:   e.accuracy(),
		ElapsedSeconds:    e.elapsed(),
	}
}

// Stats derives the immutable final statistics snapshot.
func (e *Engine) Stats() model.SessionStats {
	duration := e.elapsed()
	minutes := duration / 60

	wpm := 0
	if minutes > 0 {
		wpm = int(math.Round(float64(e.correctCharacters) / charsPerWord / minutes))
	}
	if wpm < 0 {
		wpm = 0
	}

	return model.SessionStats{
		Mode:              e.mode,
		WordsTyped:        len(e.typedWords),
		CorrectWords:      e.correctWords,
		Mistakes:          e.mistakes,
		AccuracyPercent:   e.accuracy(),
		DurationSeconds:   int(math.Round(duration)),
		WordsPerMinute:    wpm,
		CorrectCharacters: e.correctCharacters,
		SurvivalLevel:     e.survivalLevel,
		Completed:         e.completed,
	}
}

// accuracy is correctWords/submitted to two decimal places; an empty
// session reports 100 by convention.
func (e *Engine) accuracy() float64 {
	total := len(e.typedWords)
	if total == 0 {
		return 100
	}
	return math.Round(float64(e.correctWords)/float64(total)*10000) / 100
}

func (e *Engine) elapsed() float64 {
	if !e.timerStarted {
		return 0
	}
	end := e.endTime
	if end.IsZero() {
		end = e.now()
	}
	return end.Sub(e.startTime).Seconds()
}
