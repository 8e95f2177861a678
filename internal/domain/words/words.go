// Package words generates the target word sequences for typing
// sessions: random mixed-pool samples, escalating survival batches, and
// date-seeded daily challenges that are identical for every player.
package words

import (
	"math/rand"
)

// Difficulty selects a word pool tier.
type Difficulty string

// Pool tiers.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
	Mixed  Difficulty = "mixed"
)

// Survival batch sizing bounds.
const (
	survivalBaseCount = 5
	survivalMaxCount  = 15
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source, making Sample deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game word selection, not security
	}
}

// Generator produces word sequences from the tiered pools.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Sample returns count words drawn without replacement from the pool
// for the given difficulty. If count exceeds the pool, the full mixed
// pool (all tiers) is used instead.
func (g *Generator) Sample(count int, difficulty Difficulty) []string {
	pool := poolFor(difficulty)
	if count > len(pool) {
		pool = allPools()
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	g.shuffle(shuffled)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// SurvivalBatch returns the word batch for a survival level. Batch size
// grows with the level, capped at 15; difficulty escalates through the
// tiers as the level climbs.
func (g *Generator) SurvivalBatch(level int) []string {
	return g.Sample(SurvivalWordCount(level), SurvivalDifficulty(level))
}

// SurvivalDifficulty maps a survival level to its pool tier.
func SurvivalDifficulty(level int) Difficulty {
	switch {
	case level <= 3:
		return Easy
	case level <= 6:
		return Medium
	case level <= 9:
		return Hard
	default:
		return Expert
	}
}

// SurvivalWordCount returns min(5+level, 15).
func SurvivalWordCount(level int) int {
	n := survivalBaseCount + level
	if n > survivalMaxCount {
		n = survivalMaxCount
	}
	return n
}

func (g *Generator) shuffle(words []string) {
	swap := func(i, j int) { words[i], words[j] = words[j], words[i] }
	if g.rng != nil {
		g.rng.Shuffle(len(words), swap)
		return
	}
	rand.Shuffle(len(words), swap) //nolint:gosec // game word selection, not security
}

func poolFor(difficulty Difficulty) []string {
	switch difficulty {
	case Easy:
		return easyPool
	case Medium:
		return mediumPool
	case Hard:
		return hardPool
	case Expert:
		return expertPool
	case Mixed:
		return mixedPool()
	default:
		return easyPool
	}
}

func mixedPool() []string {
	pool := make([]string, 0, len(easyPool)+len(mediumPool)+len(hardPool))
	pool = append(pool, easyPool...)
	pool = append(pool, mediumPool...)
	pool = append(pool, hardPool...)
	return pool
}

func allPools() []string {
	pool := mixedPool()
	return append(pool, expertPool...)
}
