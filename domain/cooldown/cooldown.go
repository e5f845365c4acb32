package cooldown

import (
	"sync"
	"time"
)

// Action names used as the first half of a cooldown key
const (
	ActionWork    = "work"
	ActionRob     = "rob"
	ActionBankrob = "bankrob"
	ActionXP      = "xp"
)

// Clock returns the current time
type Clock func() time.Time

type key struct {
	action  string
	subject int64
}

// Gate tracks when a subject may next perform an action.
// State lives only in memory and is lost on restart.
type Gate struct {
	mu      sync.Mutex
	now     Clock
	entries map[key]time.Time
}

// NewGate creates a gate using the wall clock
func NewGate() *Gate {
	return NewGateWithClock(time.Now)
}

// NewGateWithClock creates a gate with a custom clock
func NewGateWithClock(clock Clock) *Gate {
	return &Gate{
		now:     clock,
		entries: make(map[key]time.Time),
	}
}

// Remaining returns how long the subject must still wait before performing action.
// Zero means the action is allowed.
func (g *Gate) Remaining(action string, subject int64) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key{action: action, subject: subject}
	until, ok := g.entries[k]
	if !ok {
		return 0
	}

	remaining := until.Sub(g.now())
	if remaining <= 0 {
		delete(g.entries, k)
		return 0
	}
	return remaining
}

// Start blocks the subject from performing action for d
func (g *Gate) Start(action string, subject int64, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key{action: action, subject: subject}] = g.now().Add(d)
}

// TryStart starts the cooldown only if none is active.
// It returns the remaining wait and false when the subject is still cooling down.
func (g *Gate) TryStart(action string, subject int64, d time.Duration) (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key{action: action, subject: subject}
	now := g.now()
	if until, ok := g.entries[k]; ok && until.After(now) {
		return until.Sub(now), false
	}
	g.entries[k] = now.Add(d)
	return 0, true
}

// Clear removes the cooldown for a subject
func (g *Gate) Clear(action string, subject int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key{action: action, subject: subject})
}

// Reset drops every cooldown
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = make(map[key]time.Time)
}
