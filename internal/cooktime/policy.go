// Package cooktime assigns the randomized preparation duration for new orders.
package cooktime

import (
	"math/rand"
	"sync"

	"github.com/sukab-restaurant/tableside/internal/config"
)

// Policy draws an integer cook time, in minutes, uniformly from the closed
// interval [min, max]. The draw happens exactly once per created order.
type Policy struct {
	min int
	max int

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a policy from the configured bounds. The random source is
// injected so tests can assert boundary behavior deterministically; pass
// nil to seed from the default source.
func New(cfg config.Cooking, src rand.Source) *Policy {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	min, max := cfg.MinMinutes, cfg.MaxMinutes
	if max < min {
		min, max = max, min
	}
	return &Policy{
		min: min,
		max: max,
		rng: rand.New(src),
	}
}

// Draw returns a cook time within bounds, inclusive of both ends. Safe for
// concurrent create requests.
func (p *Policy) Draw() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + p.rng.Intn(p.max-p.min+1)
}

// Bounds reports the configured inclusive interval.
func (p *Policy) Bounds() (min, max int) {
	return p.min, p.max
}
