package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrCursorNotFound = errors.New("sync cursor not found")
	ErrInvalidEntry   = errors.New("invalid leaderboard entry")
)
