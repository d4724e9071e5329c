// Package debounce implements a best-effort, single-slot debounce gate for
// noisy notifications such as repeated window scale changes.
//
// The gate keeps exactly one "last accepted" deadline guarded by one mutex.
// Checks use TryLock: a check that finds the mutex held by another check is
// dropped, not queued and not coalesced.
package debounce

import (
	"sync"
	"time"
)

// Outcome describes what a Try call did.
type Outcome int

const (
	// Ran means fn was called.
	Ran Outcome = iota + 1
	// Suppressed means the last accepted run is within the interval.
	Suppressed
	// Dropped means another check held the gate.
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Ran:
		return "ran"
	case Suppressed:
		return "suppressed"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Gate admits at most one accepted action per interval.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     *time.Time
}

// New creates a gate that suppresses checks within interval of the last
// accepted action.
func New(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Try calls fn unless the gate is contended or the last accepted action is
// within the interval of now. fn reports whether it acted; only then is now
// recorded as the new deadline origin.
func (g *Gate) Try(now time.Time, fn func() bool) Outcome {
	if !g.mu.TryLock() {
		return Dropped
	}
	defer g.mu.Unlock()

	if g.last != nil && now.Sub(*g.last) <= g.interval {
		return Suppressed
	}
	if fn() {
		g.last = &now
	}
	return Ran
}

// Last returns the time of the last accepted action, if any.
func (g *Gate) Last() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return time.Time{}, false
	}
	return *g.last, true
}
