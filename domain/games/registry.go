package games

import (
	"sync"
	"time"
)

// Step tells the registry what to do with a session after an update
type Step int

const (
	// Continue keeps the session and restarts its timeout
	Continue Step = iota
	// Finish removes the session and stops its timer
	Finish
	// Hold keeps the session without moving its deadline
	Hold
)

type session[G any] struct {
	game     G
	timer    *time.Timer
	timeout  time.Duration
	deadline time.Time
}

// Registry holds in-flight interactive sessions keyed by message or channel id.
// Each session has a timeout that fires onTimeout once if no update arrives in time.
// Updates and timeouts for a key never run concurrently.
type Registry[K comparable, G any] struct {
	mu        sync.Mutex
	sessions  map[K]*session[G]
	onTimeout func(K, G)
}

// NewRegistry creates a registry that calls onTimeout when a session expires
func NewRegistry[K comparable, G any](onTimeout func(K, G)) *Registry[K, G] {
	return &Registry[K, G]{
		sessions:  make(map[K]*session[G]),
		onTimeout: onTimeout,
	}
}

// Start registers a session. An existing session under the same key is replaced.
func (r *Registry[K, G]) Start(key K, game G, timeout time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sessions[key]; ok {
		old.timer.Stop()
	}
	s := &session[G]{game: game, timeout: timeout, deadline: time.Now().Add(timeout)}
	s.timer = time.AfterFunc(timeout, func() { r.expire(key, s) })
	r.sessions[key] = s
}

// Update runs fn against the session under key while holding the registry lock.
// It returns false if no session exists.
func (r *Registry[K, G]) Update(key K, fn func(G) Step) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		return false
	}
	switch fn(s.game) {
	case Finish:
		s.timer.Stop()
		delete(r.sessions, key)
	case Hold:
	default:
		s.deadline = time.Now().Add(s.timeout)
		s.timer.Reset(s.timeout)
	}
	return true
}

// Has reports whether a session is registered under key
func (r *Registry[K, G]) Has(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[key]
	return ok
}

// Len returns the number of live sessions
func (r *Registry[K, G]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop cancels every pending timeout without firing it
func (r *Registry[K, G]) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, s := range r.sessions {
		s.timer.Stop()
		delete(r.sessions, key)
	}
}

func (r *Registry[K, G]) expire(key K, s *session[G]) {
	r.mu.Lock()
	current, ok := r.sessions[key]
	// a timer that fired while an update held the lock may be stale
	if !ok || current != s || time.Now().Before(s.deadline) {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, key)
	r.mu.Unlock()

	if r.onTimeout != nil {
		r.onTimeout(key, s.game)
	}
}
