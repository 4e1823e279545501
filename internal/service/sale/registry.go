package sale

import "sync"

type registryEntry struct {
	mu      sync.Mutex
	session *Session
}

// Registry holds one session per cashier. Operations on the same cashier's
// session run one at a time; different cashiers never block each other.
type Registry struct {
	mu      sync.Mutex
	entries map[int64]*registryEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[int64]*registryEntry)}
}

func (r *Registry) entry(userID int64) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		e = &registryEntry{session: NewSession()}
		r.entries[userID] = e
	}
	return e
}

// With runs fn with exclusive access to the cashier's session, creating the
// session on first use.
func (r *Registry) With(userID int64, fn func(*Session) error) error {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Pending reports whether the cashier has a sale with products in progress.
func (r *Registry) Pending(userID int64) bool {
	r.mu.Lock()
	e, ok := r.entries[userID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.session.Empty()
}

// Drop forgets the cashier's session, typically at logout.
func (r *Registry) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
}
