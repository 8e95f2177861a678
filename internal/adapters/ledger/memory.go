package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/ormak/typerank/internal/domain/model"
)

// Memory is an in-memory Source. It backs tests and local play, where
// no real chain is reachable, and doubles as the reference semantics
// for Source implementations: ordered events, height as the max
// appended sequence, and push delivery to live subscribers.
type Memory struct {
	name string

	mu          sync.RWMutex
	height      uint64
	events      []model.CompletionEvent
	sessions    map[sessionKey]model.SessionRecord
	subscribers map[int]func(model.CompletionEvent)
	nextSubID   int
	unavailable bool
}

type sessionKey struct {
	player    string
	sessionID uint64
}

// NewMemory creates an empty in-memory ledger.
func NewMemory(name string) *Memory {
	return &Memory{
		name:        name,
		sessions:    make(map[sessionKey]model.SessionRecord),
		subscribers: make(map[int]func(model.CompletionEvent)),
	}
}

// Name implements Source.
func (m *Memory) Name() string { return m.name }

// SetUnavailable toggles transient-failure injection: while set, every
// operation returns ErrUnavailable.
func (m *Memory) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = unavailable
}

// Append records a completed session at the given sequence and pushes
// the resulting completion event to live subscribers.
func (m *Memory) Append(seq uint64, sessionID uint64, record model.SessionRecord) model.CompletionEvent {
	event := model.CompletionEvent{
		Player:     record.Player,
		SessionID:  sessionID,
		WordsTyped: record.WordsTyped,
		Accuracy:   record.AccuracyBasisPts,
		Timestamp:  record.EndTime,
		Sequence:   seq,
	}

	m.mu.Lock()
	m.events = append(m.events, event)
	m.sessions[sessionKey{player: strings.ToLower(record.Player), sessionID: sessionID}] = record
	if seq > m.height {
		m.height = seq
	}
	handlers := make([]func(model.CompletionEvent), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		handlers = append(handlers, fn)
	}
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
	return event
}

// Height implements Source.
func (m *Memory) Height(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.unavailable {
		return 0, ErrUnavailable
	}
	return m.height, nil
}

// QueryEvents implements Source.
func (m *Memory) QueryEvents(_ context.Context, from, to uint64) ([]model.CompletionEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.unavailable {
		return nil, ErrUnavailable
	}
	var out []model.CompletionEvent
	for _, e := range m.events {
		if e.Sequence >= from && e.Sequence <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

// SessionDetail implements Source.
func (m *Memory) SessionDetail(_ context.Context, player string, sessionID uint64) (model.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.unavailable {
		return model.SessionRecord{}, ErrUnavailable
	}
	record, ok := m.sessions[sessionKey{player: strings.ToLower(player), sessionID: sessionID}]
	if !ok {
		return model.SessionRecord{}, ErrSessionNotFound
	}
	return record, nil
}

// Subscribe implements Source.
func (m *Memory) Subscribe(_ context.Context, handler func(model.CompletionEvent)) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, ErrUnavailable
	}
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = handler
	return &memorySubscription{ledger: m, id: id}, nil
}

type memorySubscription struct {
	ledger *Memory
	id     int
	once   sync.Once
}

// Detach implements Subscription. Safe to call repeatedly.
func (s *memorySubscription) Detach() {
	s.once.Do(func() {
		s.ledger.mu.Lock()
		defer s.ledger.mu.Unlock()
		delete(s.ledger.subscribers, s.id)
	})
}
