package services

import (
	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/store"
)

// PlayerService exposes the player-facing session operations. Mutations
// run under the session gate; status polling reads go straight to the
// registry.
type PlayerService struct {
	registry *store.Registry
	gates    *gate.Gates
}

func NewPlayerService(registry *store.Registry, gates *gate.Gates) *PlayerService {
	return &PlayerService{registry: registry, gates: gates}
}

func (s *PlayerService) Join(sessionID int, name string) (int, error) {
	var id int
	err := s.gates.Session.Do(func() error {
		var err error
		id, err = s.registry.Join(sessionID, name)
		return err
	})
	return id, err
}

func (s *PlayerService) HasStarted(playerID int) (bool, error) {
	return s.registry.HasStarted(playerID)
}

func (s *PlayerService) Question(playerID int) (*store.QuestionView, error) {
	return s.registry.CurrentQuestion(playerID)
}

func (s *PlayerService) RevealedAnswers(playerID int) ([]uint, error) {
	return s.registry.RevealedAnswers(playerID)
}

func (s *PlayerService) Submit(playerID int, optionIDs []uint) error {
	return s.gates.Session.Do(func() error {
		return s.registry.SubmitAnswers(playerID, optionIDs)
	})
}

func (s *PlayerService) Results(playerID int) ([]store.AnswerRecord, error) {
	return s.registry.PlayerResults(playerID)
}
