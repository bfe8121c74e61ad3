package store

import (
	"time"

	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/models"
)

// Start creates a new session for the game in the lobby state and
// returns its id. A game may have at most one active session at a time.
func (r *Registry) Start(gameID uint, questions []models.Question) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeSessionLocked(gameID) != nil {
		return 0, apperr.Input("Game already has active session")
	}

	id := r.newSessionIDLocked()
	r.sessions[id] = &Session{
		ID:        id,
		GameID:    gameID,
		Position:  -1,
		Questions: cloneQuestions(questions),
		Active:    true,
		Players:   make(map[int]*Player),
	}
	return id, nil
}

// Advance moves the game's active session to its next question and
// returns the new position. Reaching the end of the question list ends
// the session instead of arming a reveal timer.
func (r *Registry) Advance(gameID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.activeSessionLocked(gameID)
	if sess == nil {
		return 0, apperr.Input("Game has no active session")
	}

	next := sess.Position + 1
	if next < len(sess.Questions) && sess.Questions[next].Duration <= 0 {
		return 0, apperr.Input("Question duration not found")
	}

	r.cancelTimerLocked(sess.ID)
	sess.Position = next
	sess.AnswerAvailable = false
	now := time.Now()
	sess.TimeLastQuestionStarted = &now

	if next >= len(sess.Questions) {
		sess.Active = false
		return next, nil
	}

	r.armRevealTimerLocked(sess.ID, next, time.Duration(sess.Questions[next].Duration)*time.Second)
	return next, nil
}

// End terminates the game's active session.
func (r *Registry) End(gameID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.activeSessionLocked(gameID)
	if sess == nil {
		return apperr.Input("Game has no active session")
	}
	r.cancelTimerLocked(sess.ID)
	sess.Active = false
	return nil
}

// armRevealTimerLocked schedules the one-shot flip of AnswerAvailable
// for the question at pos. The callback re-checks that the session is
// still active and still on the same question: a stale timer must never
// reveal a later question's answers.
func (r *Registry) armRevealTimerLocked(sessionID, pos int, d time.Duration) {
	r.timers[sessionID] = time.AfterFunc(d, func() {
		r.mu.Lock()
		sess, ok := r.sessions[sessionID]
		if !ok || !sess.Active || sess.Position != pos {
			r.mu.Unlock()
			return
		}
		sess.AnswerAvailable = true
		delete(r.timers, sessionID)
		fn := r.onReveal
		r.mu.Unlock()

		if fn != nil {
			fn(sessionID)
		}
	})
}

// cancelTimerLocked stops any outstanding reveal timer for the session.
// Each session holds at most one armed timer at a time.
func (r *Registry) cancelTimerLocked(sessionID int) {
	if t, ok := r.timers[sessionID]; ok {
		t.Stop()
		delete(r.timers, sessionID)
	}
}
