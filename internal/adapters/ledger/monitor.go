package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ormak/typerank/pkg/logger"
	"github.com/ormak/typerank/pkg/metrics"
)

// State is the monitor's view of the ledger connection.
type State int

// Connection states.
const (
	StateDisconnected State = iota
	StateConnected
)

// String returns a readable state name.
func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

const defaultCheckInterval = 15 * time.Second

// MonitorOption applies a configuration option to the Monitor.
type MonitorOption func(*Monitor)

// WithCheckInterval sets the health-check period.
func WithCheckInterval(interval time.Duration) MonitorOption {
	return func(m *Monitor) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// Monitor supervises the ledger connection as a background task with
// explicit connected/disconnected transitions. It is independent of the
// ingestion pipeline's own retry logic: the pipeline retries its reads,
// the monitor reports health and notifies observers.
type Monitor struct {
	source   Source
	interval time.Duration

	mu        sync.Mutex
	state     State
	observers []func(State)
	started   bool

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewMonitor creates a monitor for the given source.
func NewMonitor(source Source, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		source:   source,
		interval: defaultCheckInterval,
		state:    StateDisconnected,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("ledger-monitor"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnStateChange registers an observer invoked on every transition.
// Observers are called outside the monitor's lock, in registration
// order, from the monitor goroutine.
func (m *Monitor) OnStateChange(fn func(State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// State returns the current connection state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connected reports whether the last health check succeeded.
func (m *Monitor) Connected() bool {
	return m.State() == StateConnected
}

// Start launches the supervision loop. The first check runs
// immediately so startup state is accurate.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.run(ctx)
}

// Stop terminates the supervision loop. Idempotent.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if started {
		<-m.done
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *Monitor) check(ctx context.Context) {
	_, err := m.source.Height(ctx)

	m.mu.Lock()
	prev := m.state
	if err != nil {
		m.state = StateDisconnected
	} else {
		m.state = StateConnected
	}
	next := m.state
	observers := make([]func(State), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	metrics.UpdateLedgerConnected(next == StateConnected)

	if prev == next {
		return
	}

	if next == StateConnected {
		if prev == StateDisconnected {
			metrics.RecordLedgerReconnect()
		}
		m.logger.Info(ctx, "ledger connection healthy", logger.String("source", m.source.Name()))
	} else {
		m.logger.Warn(ctx, "ledger connection lost",
			logger.String("source", m.source.Name()),
			logger.Error(err),
		)
	}

	for _, fn := range observers {
		fn(next)
	}
}
