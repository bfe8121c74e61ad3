package services

import (
	"fmt"

	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/store"

	"gorm.io/gorm"
)

// MutationKind selects a session state-machine transition.
type MutationKind int

const (
	MutationStart MutationKind = iota
	MutationAdvance
	MutationEnd
)

// ParseMutationKind maps the wire-level mutation name onto its kind.
func ParseMutationKind(s string) (MutationKind, error) {
	switch s {
	case "START":
		return MutationStart, nil
	case "ADVANCE":
		return MutationAdvance, nil
	case "END":
		return MutationEnd, nil
	default:
		return 0, apperr.Input("Mutation type must be START, ADVANCE or END")
	}
}

type SessionService struct {
	db       *gorm.DB
	registry *store.Registry
	games    *GameService
	gates    *gate.Gates
}

func NewSessionService(db *gorm.DB, registry *store.Registry, games *GameService, gates *gate.Gates) *SessionService {
	return &SessionService{db: db, registry: registry, games: games, gates: gates}
}

// MutationResult reports the outcome of a state-machine transition.
// SessionID names the affected session; Position is set for ADVANCE.
type MutationResult struct {
	SessionID *int `json:"session_id,omitempty"`
	Position  *int `json:"position,omitempty"`
}

// Mutate dispatches a start/advance/end transition for the admin's
// game. Domain failures pass through unchanged; anything else is
// wrapped so the boundary layer reports it as an internal error.
func (s *SessionService) Mutate(adminID, gameID uint, kind MutationKind) (*MutationResult, error) {
	var result MutationResult
	err := s.gates.Game.Do(func() error {
		game, err := s.games.AssertOwnsGame(adminID, gameID)
		if err != nil {
			return err
		}

		switch kind {
		case MutationStart:
			id, err := s.registry.Start(game.ID, game.Questions)
			if err != nil {
				return err
			}
			result.SessionID = &id
		case MutationAdvance:
			if id, ok := s.registry.ActiveSessionID(game.ID); ok {
				result.SessionID = &id
			}
			pos, err := s.registry.Advance(game.ID)
			if err != nil {
				return err
			}
			result.Position = &pos
		case MutationEnd:
			if id, ok := s.registry.ActiveSessionID(game.ID); ok {
				result.SessionID = &id
			}
			if err := s.registry.End(game.ID); err != nil {
				return err
			}
		default:
			return apperr.Input("Mutation type must be START, ADVANCE or END")
		}
		return nil
	})
	if err != nil {
		if apperr.IsInput(err) || apperr.IsAccess(err) {
			return nil, err
		}
		return nil, fmt.Errorf("session mutation failed: %w", err)
	}
	return &result, nil
}

// GameSessions lists the admin's session history for one game: the
// active session id, if any, plus all ended session ids.
type GameSessions struct {
	ActiveSessionID    *int  `json:"active_session_id"`
	InactiveSessionIDs []int `json:"inactive_session_ids"`
}

func (s *SessionService) SessionsForGame(adminID, gameID uint) (*GameSessions, error) {
	if _, err := s.games.AssertOwnsGame(adminID, gameID); err != nil {
		return nil, err
	}
	out := &GameSessions{InactiveSessionIDs: s.registry.InactiveSessionIDs(gameID)}
	if id, ok := s.registry.ActiveSessionID(gameID); ok {
		out.ActiveSessionID = &id
	}
	return out, nil
}

// Status returns the admin projection of a session. Reads are allowed
// outside the mutation gates; polling tolerates slightly stale data.
func (s *SessionService) Status(adminID uint, sessionID int) (*store.SessionStatus, error) {
	if err := s.assertOwnsSession(adminID, sessionID); err != nil {
		return nil, err
	}
	return s.registry.Status(sessionID)
}

// Results returns every player's answer ledger for an ended session.
func (s *SessionService) Results(adminID uint, sessionID int) ([]store.PlayerResult, error) {
	if err := s.assertOwnsSession(adminID, sessionID); err != nil {
		return nil, err
	}
	return s.registry.SessionResults(sessionID)
}

func (s *SessionService) assertOwnsSession(adminID uint, sessionID int) error {
	gameID, err := s.registry.GameIDOf(sessionID)
	if err != nil {
		return err
	}
	_, err = s.games.AssertOwnsGame(adminID, gameID)
	return err
}
