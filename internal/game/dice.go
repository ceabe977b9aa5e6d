package game

import (
	"math/rand"
	"sync"
	"time"
)

// Dice abstracts the probabilistic rolls (treat drops, rare drops) so tests
// can force or forbid them, mirroring how the Clock is faked.
type Dice interface {
	// Chance returns true with probability p (clamped to [0, 1]).
	Chance(p float64) bool
}

type randDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDice returns time-seeded dice.
func NewDice() Dice {
	return &randDice{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (d *randDice) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64() < p
}

// FixedDice always answers the same way; the deterministic counterpart to
// ManualClock.
type FixedDice struct {
	Result bool
}

func (d FixedDice) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return d.Result
}
