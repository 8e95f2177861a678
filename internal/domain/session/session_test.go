package session

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/domain/words"
)

// stepClock advances a fixed amount per reading.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newEngine(t *testing.T, mode model.Mode, cfg Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(mode, cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestNew(t *testing.T) {
	Convey("Engine construction validates its config", t, func() {
		Convey("An unknown mode is refused", func() {
			_, err := New(model.Mode(42), Config{})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Word-count mode requires a positive count", func() {
			_, err := New(model.ModeWordCount, Config{})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Daily challenge requires a date", func() {
			_, err := New(model.ModeDailyChallenge, Config{})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Paragraph mode requires text", func() {
			_, err := New(model.ModeParagraph, Config{ParagraphText: "   "})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Word-count mode draws exactly the configured words", func() {
			e := newEngine(t, model.ModeWordCount, Config{WordCount: 10})
			So(e.Words(), ShouldHaveLength, 10)
		})

		Convey("Daily challenge adopts the derived time limit", func() {
			e := newEngine(t, model.ModeDailyChallenge, Config{Date: "2024-03-13"})
			challenge := words.GenerateDaily("2024-03-13")
			So(e.Words(), ShouldResemble, challenge.Words)
			So(e.config.TimeLimit, ShouldEqual, challenge.TimeLimit)
		})

		Convey("Paragraph mode splits the supplied text", func() {
			e := newEngine(t, model.ModeParagraph, Config{ParagraphText: "alpha beta gamma"})
			So(e.Words(), ShouldResemble, []string{"alpha", "beta", "gamma"})
		})
	})
}

func TestSubmitWord(t *testing.T) {
	Convey("Given a word-count session", t, func() {
		e := newEngine(t, model.ModeWordCount, Config{WordCount: 3})
		target := e.Words()

		Convey("A correct word advances the index", func() {
			res, err := e.SubmitWord(target[0])
			So(err, ShouldBeNil)
			So(res.Correct, ShouldBeTrue)
			So(res.Completed, ShouldBeFalse)
			So(res.NextWord, ShouldEqual, target[1])
			So(res.Progress.CurrentWordIndex, ShouldEqual, 1)
		})

		Convey("Matching is case-insensitive and trims whitespace", func() {
			res, err := e.SubmitWord("  " + upper(target[0]) + " ")
			So(err, ShouldBeNil)
			So(res.Correct, ShouldBeTrue)
		})

		Convey("A wrong word counts a mistake and does not advance", func() {
			res, err := e.SubmitWord("definitely-wrong")
			So(err, ShouldBeNil)
			So(res.Correct, ShouldBeFalse)
			So(res.NextWord, ShouldEqual, target[0])
			So(res.Progress.Mistakes, ShouldEqual, 1)
			So(res.Progress.CurrentWordIndex, ShouldEqual, 0)
		})

		Convey("The session completes when the last word lands", func() {
			for _, w := range target[:2] {
				_, err := e.SubmitWord(w)
				So(err, ShouldBeNil)
			}
			res, err := e.SubmitWord(target[2])
			So(err, ShouldBeNil)
			So(res.Completed, ShouldBeTrue)
			So(e.Completed(), ShouldBeTrue)

			Convey("And further submissions are refused", func() {
				_, err := e.SubmitWord(target[0])
				So(err, ShouldEqual, ErrSessionCompleted)
			})
		})
	})

	Convey("Given a survival session", t, func() {
		e := newEngine(t, model.ModeSurvival, Config{})

		Convey("It starts at level 1 with the base batch", func() {
			So(e.SurvivalLevel(), ShouldEqual, 1)
			So(e.Words(), ShouldHaveLength, words.SurvivalWordCount(1))
		})

		Convey("Three mistakes end the game", func() {
			for i := 0; i < 2; i++ {
				res, err := e.SubmitWord("definitely-wrong")
				So(err, ShouldBeNil)
				So(res.GameOver, ShouldBeFalse)
			}
			res, err := e.SubmitWord("definitely-wrong")
			So(err, ShouldBeNil)
			So(res.GameOver, ShouldBeTrue)
			So(res.Completed, ShouldBeTrue)
		})

		Convey("Clearing a batch grows the list at the next level", func() {
			first := len(e.Words())
			for i := 0; i < first; i++ {
				_, err := e.SubmitWord(e.CurrentWord())
				So(err, ShouldBeNil)
			}
			So(e.SurvivalLevel(), ShouldEqual, 2)
			So(len(e.Words()), ShouldEqual, first+words.SurvivalWordCount(2))
			So(e.Completed(), ShouldBeFalse)
		})
	})

	Convey("Given a time-limit session", t, func() {
		e := newEngine(t, model.ModeTimeLimit, Config{TimeLimit: 60})
		initial := len(e.Words())

		Convey("Exhausting the word list grows it instead of ending", func() {
			for i := 0; i < initial; i++ {
				res, err := e.SubmitWord(e.CurrentWord())
				So(err, ShouldBeNil)
				So(res.Completed, ShouldBeFalse)
				So(res.NextWord, ShouldNotBeEmpty)
			}
			So(len(e.Words()), ShouldBeGreaterThan, initial)
			So(e.Completed(), ShouldBeFalse)
		})
	})

	Convey("Given a practice session", t, func() {
		e := newEngine(t, model.ModePractice, Config{})
		initial := len(e.Words())

		Convey("The final word of the sample is accepted without ending", func() {
			for i := 0; i < initial; i++ {
				_, err := e.SubmitWord(e.CurrentWord())
				So(err, ShouldBeNil)
			}
			res, err := e.SubmitWord(e.CurrentWord())
			So(err, ShouldBeNil)
			So(res.Completed, ShouldBeFalse)
			So(e.Completed(), ShouldBeFalse)
		})
	})

	Convey("Given a paragraph session", t, func() {
		e := newEngine(t, model.ModeParagraph, Config{ParagraphText: "one two"})

		Convey("It completes after the final word", func() {
			_, err := e.SubmitWord("one")
			So(err, ShouldBeNil)
			res, err := e.SubmitWord("two")
			So(err, ShouldBeNil)
			So(res.Completed, ShouldBeTrue)
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given a session with a stepping clock", t, func() {
		// Each submission reads the clock twice (start latch plus log
		// entry on the first), so drive steps explicitly.
		clock := &stepClock{now: time.Unix(1700000000, 0), step: 0}
		e := newEngine(t, model.ModeTimeLimit, Config{TimeLimit: 60}, WithClock(clock.Now))
		target := e.Words()

		Convey("An untouched session reports zero elapsed and full accuracy", func() {
			p := e.Progress()
			So(p.ElapsedSeconds, ShouldEqual, 0)
			So(p.AccuracyPercent, ShouldEqual, 100)
			So(p.TotalWords, ShouldEqual, -1)
		})

		Convey("Stats derive WPM from correct characters over elapsed minutes", func() {
			chars := 0
			for i := 0; i < 10; i++ {
				_, err := e.SubmitWord(target[i])
				So(err, ShouldBeNil)
				chars += len(target[i])
			}

			// End exactly 30 seconds after the latched start.
			clock.step = 30 * time.Second
			e.ForceComplete()
			clock.step = 0

			stats := e.Stats()
			So(stats.Completed, ShouldBeTrue)
			So(stats.WordsTyped, ShouldEqual, 10)
			So(stats.CorrectWords, ShouldEqual, 10)
			So(stats.AccuracyPercent, ShouldEqual, 100)
			So(stats.DurationSeconds, ShouldEqual, 30)
			So(stats.CorrectCharacters, ShouldEqual, chars)
			expectedWPM := int(float64(chars)/5/0.5 + 0.5)
			So(stats.WordsPerMinute, ShouldEqual, expectedWPM)
		})

		Convey("Accuracy mixes correct and wrong submissions", func() {
			_, _ = e.SubmitWord(target[0])
			_, _ = e.SubmitWord("definitely-wrong")
			_, _ = e.SubmitWord(target[1])
			_, _ = e.SubmitWord("definitely-wrong")

			stats := e.Stats()
			So(stats.AccuracyPercent, ShouldEqual, 50)
			So(stats.Mistakes, ShouldEqual, 2)
			So(stats.WordsPerMinute, ShouldEqual, 0) // zero elapsed time
		})

		Convey("ForceComplete is idempotent", func() {
			e.ForceComplete()
			e.ForceComplete()
			So(e.Completed(), ShouldBeTrue)
		})
	})
}

func TestCompareTexts(t *testing.T) {
	Convey("CompareTexts scores positionally", t, func() {
		Convey("A perfect submission", func() {
			m := CompareTexts("the quick fox", "the quick fox")
			So(m.WordsTyped, ShouldEqual, 3)
			So(m.CorrectWords, ShouldEqual, 3)
			So(m.Mistakes, ShouldEqual, 0)
			So(m.AccuracyPercent, ShouldEqual, 100)
			So(m.AccuracyBasisPts, ShouldEqual, 10000)
		})

		Convey("Case differences still match", func() {
			m := CompareTexts("The Quick", "the quick")
			So(m.CorrectWords, ShouldEqual, 2)
		})

		Convey("A transposed word misses both positions", func() {
			m := CompareTexts("one two three", "two one three")
			So(m.CorrectWords, ShouldEqual, 1)
			So(m.Mistakes, ShouldEqual, 2)
		})

		Convey("Extra words past the original count as mistakes", func() {
			m := CompareTexts("one", "one two")
			So(m.WordsTyped, ShouldEqual, 2)
			So(m.CorrectWords, ShouldEqual, 1)
			So(m.Mistakes, ShouldEqual, 1)
			So(m.AccuracyPercent, ShouldEqual, 50)
		})

		Convey("An empty submission scores zero", func() {
			m := CompareTexts("one two", "")
			So(m.WordsTyped, ShouldEqual, 0)
			So(m.AccuracyPercent, ShouldEqual, 0)
		})

		Convey("Accuracy rounds to two decimals", func() {
			m := CompareTexts("a b c", "a b x")
			So(m.AccuracyPercent, ShouldEqual, 66.67)
			So(m.AccuracyBasisPts, ShouldEqual, 6667)
		})
	})
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if 'a' <= r && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}
