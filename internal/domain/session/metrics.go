package session

import (
	"math"
	"strings"
)

// TextMetrics summarizes a full typed text compared word-by-word
// against the original. Used by paragraph submissions, where the client
// sends the whole typed text at once instead of per-word events.
type TextMetrics struct {
	WordsTyped        int     `json:"wordsTyped"`
	CorrectWords      int     `json:"correctWords"`
	Mistakes          int     `json:"mistakes"`
	AccuracyPercent   float64 `json:"accuracy"`
	AccuracyBasisPts  int     `json:"accuracyBasisPoints"`
	TotalCharacters   int     `json:"totalCharacters"`
	CorrectCharacters int     `json:"correctCharacters"`
}

// CompareTexts scores typed against original positionally, one word at
// a time, case-insensitively. Accuracy is correct/typed as a percent to
// two decimals; an empty submission scores 0.
func CompareTexts(original, typed string) TextMetrics {
	originalWords := strings.Fields(original)
	typedWords := strings.Fields(typed)

	var m TextMetrics
	m.WordsTyped = len(typedWords)

	for i, t := range typedWords {
		var o string
		if i < len(originalWords) {
			o = originalWords[i]
		}
		if strings.EqualFold(t, o) {
			m.CorrectWords++
			m.CorrectCharacters += len(o)
		} else {
			m.Mistakes++
		}
		m.TotalCharacters += len(t)
	}

	if m.WordsTyped > 0 {
		accuracy := float64(m.CorrectWords) / float64(m.WordsTyped) * 100
		m.AccuracyPercent = math.Round(accuracy*100) / 100
		m.AccuracyBasisPts = int(math.Round(accuracy * 100))
	}

	return m
}
