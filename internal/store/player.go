package store

import (
	"sort"
	"time"

	"bigbrain-backend/internal/apperr"
)

// Join adds a player to a session that is still in its lobby and
// returns the new player id. The player's answer ledger is pre-sized to
// the session's question count.
func (r *Registry) Join(sessionID int, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return 0, apperr.Input("Name must be provided")
	}
	sess, ok := r.sessions[sessionID]
	if !ok || !sess.Active {
		return 0, apperr.Input("Session ID is not an active session")
	}
	if sess.Position >= 0 {
		return 0, apperr.Input("Session has already begun")
	}

	id := r.newPlayerIDLocked()
	sess.Players[id] = &Player{
		ID:      id,
		Name:    name,
		Answers: make([]AnswerRecord, len(sess.Questions)),
	}
	return id, nil
}

// HasStarted reports whether the player's session has left the lobby.
// Used for lobby polling.
func (r *Registry) HasStarted(playerID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, _, err := r.sessionByPlayerLocked(playerID)
	if err != nil {
		return false, err
	}
	return sess.TimeLastQuestionStarted != nil, nil
}

// CurrentQuestion returns the in-play question with its correct-answer
// markings stripped, plus the timestamp the question opened so clients
// can run their own countdown.
func (r *Registry) CurrentQuestion(playerID int) (*QuestionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, _, err := r.sessionByPlayerLocked(playerID)
	if err != nil {
		return nil, err
	}
	if sess.Position < 0 {
		return nil, apperr.Input("Session has not started yet")
	}
	if sess.Position >= len(sess.Questions) {
		return nil, apperr.Input("Session has no current question")
	}

	q := sess.Questions[sess.Position]
	view := &QuestionView{
		ID:                      q.ID,
		Text:                    q.Text,
		Duration:                q.Duration,
		Points:                  q.Points,
		TimeLastQuestionStarted: sess.TimeLastQuestionStarted,
		Options:                 make([]OptionView, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		view.Options = append(view.Options, OptionView{ID: o.ID, Text: o.Text})
	}
	return view, nil
}

// RevealedAnswers returns the current question's correct option ids
// once its timer has fired.
func (r *Registry) RevealedAnswers(playerID int) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, _, err := r.sessionByPlayerLocked(playerID)
	if err != nil {
		return nil, err
	}
	if sess.Position < 0 {
		return nil, apperr.Input("Session has not started yet")
	}
	if !sess.AnswerAvailable {
		return nil, apperr.Input("Answers are not available yet")
	}
	return sess.Questions[sess.Position].CorrectOptionIDs(), nil
}

// SubmitAnswers overwrites the player's answer slot for the current
// question. Players may re-submit while the window is open (last write
// wins) but never once the answer has been revealed.
func (r *Registry) SubmitAnswers(playerID int, optionIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(optionIDs) == 0 {
		return apperr.Input("Must provide at least one answer")
	}
	sess, player, err := r.sessionByPlayerLocked(playerID)
	if err != nil {
		return err
	}
	if sess.Position < 0 {
		return apperr.Input("Session has not started yet")
	}
	if sess.Position >= len(sess.Questions) {
		return apperr.Input("Session has no current question")
	}
	if sess.AnswerAvailable {
		return apperr.Input("Can't answer question once answer is available")
	}

	now := time.Now()
	player.Answers[sess.Position] = AnswerRecord{
		QuestionStartedAt: sess.TimeLastQuestionStarted,
		AnsweredAt:        &now,
		OptionIDs:         append([]uint(nil), optionIDs...),
		Correct:           sameOptionSet(optionIDs, sess.Questions[sess.Position].CorrectOptionIDs()),
	}
	return nil
}

// PlayerResults returns the player's full answer ledger once the
// session has ended.
func (r *Registry) PlayerResults(playerID int) ([]AnswerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, player, err := r.sessionByPlayerLocked(playerID)
	if err != nil {
		return nil, err
	}
	if sess.Active {
		return nil, apperr.Input("Session is ongoing, cannot get results yet")
	}
	if sess.Position < 0 {
		return nil, apperr.Input("Session has not begun")
	}
	return append([]AnswerRecord(nil), player.Answers...), nil
}

// SessionResults returns every player's answer ledger once the session
// has ended.
func (r *Registry) SessionResults(sessionID int) ([]PlayerResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, err := r.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Active {
		return nil, apperr.Input("Session is ongoing, cannot get results yet")
	}

	results := make([]PlayerResult, 0, len(sess.Players))
	for _, p := range sess.Players {
		results = append(results, PlayerResult{
			Name:    p.Name,
			Answers: append([]AnswerRecord(nil), p.Answers...),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// Status returns a read-only projection of the session: flags,
// timestamps, the question list, and joined player names.
func (r *Registry) Status(sessionID int) (*SessionStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, err := r.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sess.Players))
	for _, p := range sess.Players {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return &SessionStatus{
		Active:                  sess.Active,
		AnswerAvailable:         sess.AnswerAvailable,
		TimeLastQuestionStarted: sess.TimeLastQuestionStarted,
		Position:                sess.Position,
		Questions:               cloneQuestions(sess.Questions),
		Players:                 names,
	}, nil
}
