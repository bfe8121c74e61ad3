// Package store holds the in-memory session registry and the per-session
// state machine. Sessions live only for the lifetime of the process.
//
// All registry state is guarded by a single RWMutex. The domain gates in
// internal/gate serialize whole operations; this mutex additionally keeps
// the reveal-timer callback and ungated status reads memory-safe.
package store

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"bigbrain-backend/internal/apperr"
)

const idRange = 100000000

type Registry struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	timers   map[int]*time.Timer
	onReveal func(sessionID int)
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int]*Session),
		timers:   make(map[int]*time.Timer),
	}
}

// SetRevealHook registers a callback invoked whenever a reveal timer
// fires and makes a question's answers available. Set once at wiring
// time, before any session starts.
func (r *Registry) SetRevealHook(fn func(sessionID int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReveal = fn
}

// newSessionIDLocked draws a random id not already tracked by the
// registry, retrying on collision.
func (r *Registry) newSessionIDLocked() int {
	for {
		id := rand.Intn(idRange)
		if _, taken := r.sessions[id]; !taken {
			return id
		}
	}
}

// newPlayerIDLocked draws a player id unique across every session.
func (r *Registry) newPlayerIDLocked() int {
	for {
		id := rand.Intn(idRange)
		if !r.playerIDTakenLocked(id) {
			return id
		}
	}
}

func (r *Registry) playerIDTakenLocked(id int) bool {
	for _, sess := range r.sessions {
		if _, ok := sess.Players[id]; ok {
			return true
		}
	}
	return false
}

// activeSessionLocked returns the unique active session for the game,
// or nil when there is none (or, degenerately, more than one).
func (r *Registry) activeSessionLocked(gameID uint) *Session {
	var found *Session
	for _, sess := range r.sessions {
		if sess.GameID == gameID && sess.Active {
			if found != nil {
				return nil
			}
			found = sess
		}
	}
	return found
}

// ActiveSessionID returns the id of the game's unique active session.
func (r *Registry) ActiveSessionID(gameID uint) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess := r.activeSessionLocked(gameID)
	if sess == nil {
		return 0, false
	}
	return sess.ID, true
}

// InactiveSessionIDs returns the ids of all ended sessions for the
// game, ascending. Used for history display.
func (r *Registry) InactiveSessionIDs(gameID uint) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []int{}
	for id, sess := range r.sessions {
		if sess.GameID == gameID && !sess.Active {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// sessionByPlayerLocked scans every session's player map for the player.
func (r *Registry) sessionByPlayerLocked(playerID int) (*Session, *Player, error) {
	for _, sess := range r.sessions {
		if p, ok := sess.Players[playerID]; ok {
			return sess, p, nil
		}
	}
	return nil, nil, apperr.Input("Player ID does not refer to a valid player")
}

func (r *Registry) sessionLocked(sessionID int) (*Session, error) {
	sess, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperr.Input("Session ID is not valid")
	}
	return sess, nil
}

// GameIDOf reports which game a session belongs to.
func (r *Registry) GameIDOf(sessionID int) (uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, err := r.sessionLocked(sessionID)
	if err != nil {
		return 0, err
	}
	return sess.GameID, nil
}

// Reset drops every session and stops any armed reveal timers. Intended
// for test isolation only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
	r.sessions = make(map[int]*Session)
}
