package wizard

import "sync"

// Registry tracks which guilds currently have a setup session running and
// enforces at most one per guild. It also routes inbound replies to the
// session that owns them. An instance is injected wherever it's needed;
// there is no package-level registry.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

// TryAcquire marks the session's scope busy and returns true, unless another
// session is already active there, in which case nothing changes and it
// returns false.
func (r *Registry) TryAcquire(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.sessions[s.ScopeId]; busy {
		return false
	}
	r.sessions[s.ScopeId] = s
	return true
}

// Release clears the busy mark for a scope. Safe to call more than once;
// every session exit path runs through here, so a crashed session can never
// permanently lock a guild out of setup.
func (r *Registry) Release(scopeId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, scopeId)
}

// Lookup returns the active session for a scope, or nil.
func (r *Registry) Lookup(scopeId string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[scopeId]
}
