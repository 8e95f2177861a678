// Package loadtest drives synthetic traffic against a running
// leaderboard instance. It exercises the read endpoints and the
// signing endpoint concurrently and reports latency and error counts.
package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ormak/typerank/pkg/logger"
)

// Config controls a load test run.
type Config struct {
	BaseURL  string
	Requests int
	Workers  int
	Timeout  time.Duration
	Verbose  bool
}

// Stats aggregates run results.
type Stats struct {
	Requests  atomic.Int64
	Errors    atomic.Int64
	BadStatus atomic.Int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (s *Stats) record(latency time.Duration) {
	s.mu.Lock()
	s.latencies = append(s.latencies, latency)
	s.mu.Unlock()
}

// Percentile returns the given latency percentile in milliseconds.
func (s *Stats) Percentile(p float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(s.latencies))
	copy(sorted, s.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(p * float64(len(sorted)-1))
	return float64(sorted[idx].Microseconds()) / 1000
}

// target is one request the generator can issue.
type target struct {
	name   string
	method string
	path   string
	body   func() any
}

func targets() []target {
	players := []string{"0xAAA", "0xBBB", "0xCCC", "0xDDD"}
	return []target{
		{name: "global", method: http.MethodGet, path: "/leaderboard/global?period=all&limit=50"},
		{name: "weekly", method: http.MethodGet, path: "/leaderboard/global?period=weekly&limit=50"},
		{name: "mode", method: http.MethodGet, path: "/leaderboard/mode/time-limit"},
		{name: "player", method: http.MethodGet, path: "/leaderboard/player/" + players[rand.Intn(len(players))]},
		{name: "daily", method: http.MethodGet, path: "/daily-challenge"},
		{name: "stats", method: http.MethodGet, path: "/stats"},
		{
			name:   "sign",
			method: http.MethodPost,
			path:   "/game/sign",
			body: func() any {
				words := 10 + rand.Intn(40)
				return map[string]any{
					"player":            "0x" + uuid.NewString()[:8],
					"sessionId":         rand.Intn(100000),
					"wordsTyped":        words,
					"correctWords":      words - rand.Intn(3),
					"mistakes":          rand.Intn(3),
					"correctCharacters": words * 5,
					"wpm":               30 + rand.Intn(90),
				}
			},
		},
	}
}

// Run executes the load test and logs a summary.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Requests <= 0 || cfg.Workers <= 0 {
		return fmt.Errorf("requests and workers must be positive")
	}

	log := logger.Get().Named("loadtest")
	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
	)

	client := &http.Client{Timeout: cfg.Timeout}
	stats := &Stats{}
	pool := targets()

	jobs := make(chan target, cfg.Workers)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tgt := range jobs {
				issue(ctx, client, cfg, tgt, stats, log)
			}
		}()
	}

	start := time.Now()
	for i := 0; i < cfg.Requests; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- pool[i%len(pool)]:
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	log.Info(ctx, "load test finished",
		logger.Int64("requests", stats.Requests.Load()),
		logger.Int64("errors", stats.Errors.Load()),
		logger.Int64("badStatus", stats.BadStatus.Load()),
		logger.Float64("seconds", elapsed.Seconds()),
		logger.Float64("p50ms", stats.Percentile(0.50)),
		logger.Float64("p95ms", stats.Percentile(0.95)),
		logger.Float64("p99ms", stats.Percentile(0.99)),
	)
	return nil
}

func issue(ctx context.Context, client *http.Client, cfg *Config, tgt target, stats *Stats, log logger.Logger) {
	var body *bytes.Reader
	if tgt.body != nil {
		raw, err := json.Marshal(tgt.body())
		if err != nil {
			stats.Errors.Add(1)
			return
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, tgt.method, cfg.BaseURL+tgt.path, body)
	if err != nil {
		stats.Errors.Add(1)
		return
	}
	if tgt.method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)

	stats.Requests.Add(1)
	if err != nil {
		stats.Errors.Add(1)
		if cfg.Verbose {
			log.Warn(ctx, "request failed", logger.String("target", tgt.name), logger.Error(err))
		}
		return
	}
	defer resp.Body.Close()

	stats.record(latency)
	if resp.StatusCode >= http.StatusBadRequest {
		stats.BadStatus.Add(1)
		if cfg.Verbose {
			log.Warn(ctx, "unexpected status",
				logger.String("target", tgt.name),
				logger.Int("status", resp.StatusCode),
			)
		}
	}
}
