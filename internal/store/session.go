package store

import (
	"sort"
	"time"

	"bigbrain-backend/internal/models"
)

// Session is the live in-memory state for one run of a game. Position
// -1 is the lobby; 0..len(Questions)-1 is the current question; once
// Position reaches len(Questions) the session ends automatically.
//
// Questions is a snapshot taken at start time: edits to the stored game
// definition never reach a session that is already running.
type Session struct {
	ID                      int
	GameID                  uint
	Position                int
	TimeLastQuestionStarted *time.Time
	Questions               []models.Question
	Active                  bool
	AnswerAvailable         bool
	Players                 map[int]*Player
}

type Player struct {
	ID      int
	Name    string
	Answers []AnswerRecord
}

// AnswerRecord is one player's answer slot for one question. Slots are
// pre-allocated blank at join time, one per question.
type AnswerRecord struct {
	QuestionStartedAt *time.Time `json:"question_started_at"`
	AnsweredAt        *time.Time `json:"answered_at"`
	OptionIDs         []uint     `json:"answer_ids"`
	Correct           bool       `json:"correct"`
}

// OptionView is an option with its correctness stripped, safe to show
// to a player while the question is open.
type OptionView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionView is the player-facing projection of the current question.
type QuestionView struct {
	ID                      uint         `json:"id"`
	Text                    string       `json:"text"`
	Duration                int          `json:"duration"`
	Points                  int          `json:"points"`
	TimeLastQuestionStarted *time.Time   `json:"iso_time_last_question_started"`
	Options                 []OptionView `json:"options"`
}

// SessionStatus is the admin-facing projection of a session.
type SessionStatus struct {
	Active                  bool              `json:"active"`
	AnswerAvailable         bool              `json:"answer_available"`
	TimeLastQuestionStarted *time.Time        `json:"iso_time_last_question_started"`
	Position                int               `json:"position"`
	Questions               []models.Question `json:"questions"`
	Players                 []string          `json:"players"`
}

// PlayerResult pairs a player's name with their full answer ledger.
type PlayerResult struct {
	Name    string         `json:"name"`
	Answers []AnswerRecord `json:"answers"`
}

// cloneQuestions copies a game's question list by value so later
// mutation of the source cannot leak into a running session.
func cloneQuestions(src []models.Question) []models.Question {
	out := make([]models.Question, len(src))
	for i, q := range src {
		q.Options = append([]models.Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// sameOptionSet reports exact set equality of the two id lists,
// ignoring order.
func sameOptionSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]uint(nil), a...)
	bs := append([]uint(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
