// Package gate provides named mutual-exclusion gates that serialize
// state-changing operations per domain. Concurrent request handlers
// entering the same gate run one at a time, in the mutex's fairness
// order; the gate is released even if the body panics.
package gate

import "sync"

type Gate struct {
	mu sync.Mutex
}

// Do runs fn with exclusive access to the gate and returns fn's error.
func (g *Gate) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}

// Gates bundles the three serialization domains: admin auth mutations,
// game/session-machine mutations, and player-facing session mutations.
type Gates struct {
	Auth    Gate
	Game    Gate
	Session Gate
}

func NewGates() *Gates {
	return &Gates{}
}
