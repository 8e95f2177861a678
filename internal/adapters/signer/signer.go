// Package signer is the backend's signing authority: it attests game
// results and achievement grants so the on-chain contract can verify
// that a submission passed server-side validation. Signatures are
// deterministic over a canonical message encoding; player addresses
// are lower-cased before signing so address case cannot produce two
// different attestations for the same result.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrNoKey is returned when a signer is constructed without key
// material.
var ErrNoKey = errors.New("signer: empty signing key")

// GameResult is the set of session fields covered by a result
// signature. Any field change invalidates the signature.
type GameResult struct {
	Player            string
	SessionID         uint64
	WordsTyped        int
	CorrectWords      int
	Mistakes          int
	CorrectCharacters int
	WordsPerMinute    int
}

// Signer attests game results and achievement grants.
type Signer interface {
	// SignGameResult returns a hex signature over the result fields.
	SignGameResult(result GameResult) (string, error)

	// SignAchievement returns a hex signature over
	// (player, achievementID).
	SignAchievement(player string, achievementID int) (string, error)
}

// HMAC signs with HMAC-SHA256 over a shared key. The verifying side
// holds the same key.
type HMAC struct {
	key []byte
}

// NewHMAC creates an HMAC signer. The key must be non-empty.
func NewHMAC(key []byte) (*HMAC, error) {
	if len(key) == 0 {
		return nil, ErrNoKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &HMAC{key: k}, nil
}

// SignGameResult implements Signer.
func (h *HMAC) SignGameResult(result GameResult) (string, error) {
	message := fmt.Sprintf("game-result|%s|%d|%d|%d|%d|%d|%d",
		strings.ToLower(result.Player),
		result.SessionID,
		result.WordsTyped,
		result.CorrectWords,
		result.Mistakes,
		result.CorrectCharacters,
		result.WordsPerMinute,
	)
	return h.sign(message), nil
}

// SignAchievement implements Signer.
func (h *HMAC) SignAchievement(player string, achievementID int) (string, error) {
	message := fmt.Sprintf("achievement|%s|%d", strings.ToLower(player), achievementID)
	return h.sign(message), nil
}

func (h *HMAC) sign(message string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
