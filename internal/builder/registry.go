package builder

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state    *State
	lastSeen time.Time
}

// Registry maps browser session ids to their builder State. Nothing is
// persisted; idle entries are dropped by Sweep.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	opts    []func() Option
	now     func() time.Time
}

// NewRegistry creates a registry whose sessions expire after ttl of
// inactivity. A zero ttl disables expiry. Each of opts is called once per
// new State; the Options it returns must not be shared between States.
func NewRegistry(ttl time.Duration, opts ...func() Option) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		opts:    opts,
		now:     time.Now,
	}
}

// Get returns the State for id, creating a default one on first use.
func (r *Registry) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		stateOpts := make([]Option, len(r.opts))
		for i, opt := range r.opts {
			stateOpts[i] = opt()
		}
		e = &entry{state: NewDefault(stateOpts...)}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	return e.state
}

// Lookup returns the State for id without creating one.
func (r *Registry) Lookup(id string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.state, true
}

// Has reports whether id is live without refreshing it.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Drop forgets the session id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes sessions idle for longer than the ttl and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
