package session

import (
	"fmt"
	"sync"
)

// Registry maps each guild to at most one Session. The top-level map is
// guarded by a short-lived mutex; session creation and teardown additionally
// serialize through a per-guild lock so racing joins connect exactly once
// without stalling unrelated guilds.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	creating map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		creating: make(map[string]*sync.Mutex),
	}
}

// guildLock returns the creation lock for a guild, making it on first use.
// Locks are never discarded; the map is bounded by the number of guilds seen.
func (r *Registry) guildLock(guildID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.creating[guildID]
	if !ok {
		l = &sync.Mutex{}
		r.creating[guildID] = l
	}
	return l
}

// GetOrCreate returns the guild's session, creating it when absent. The
// connector runs at most once per created session while the guild's creation
// lock is held, covering its network I/O so two near-simultaneous joins
// cannot double-connect. On connector failure nothing is installed. The
// second return reports whether this call created the session.
func (r *Registry) GetOrCreate(guildID, replyChannelID string, connect func() error) (*Session, bool, error) {
	l := r.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	s, ok := r.sessions[guildID]
	r.mu.Unlock()
	if ok {
		return s, false, nil
	}

	if err := connect(); err != nil {
		return nil, false, fmt.Errorf("connect guild %s: %w", guildID, err)
	}

	s = newSession(guildID, replyChannelID)
	r.mu.Lock()
	r.sessions[guildID] = s
	r.mu.Unlock()
	return s, true, nil
}

// Get is a non-blocking lookup.
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove deletes and returns the guild's session. Removing an absent guild is
// a no-op, not an error.
func (r *Registry) Remove(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	if ok {
		delete(r.sessions, guildID)
	}
	return s, ok
}

// Drain removes every session and returns them, used when the engine
// reconnects and all previously created players are stale.
func (r *Registry) Drain() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		out = append(out, s)
		delete(r.sessions, id)
	}
	return out
}

// Locked runs fn while holding the guild's creation lock, serializing
// teardown against concurrent joins for the same guild.
func (r *Registry) Locked(guildID string, fn func() error) error {
	l := r.guildLock(guildID)
	l.Lock()
	defer l.Unlock()
	return fn()
}
