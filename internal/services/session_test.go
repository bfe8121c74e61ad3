package services

import (
	"testing"

	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/models"
)

func TestParseMutationKind(t *testing.T) {
	tests := []struct {
		in      string
		want    MutationKind
		wantErr bool
	}{
		{"START", MutationStart, false},
		{"ADVANCE", MutationAdvance, false},
		{"END", MutationEnd, false},
		{"start", 0, true},
		{"DESTROY", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMutationKind(tt.in)
		if tt.wantErr {
			if !apperr.IsInput(err) {
				t.Errorf("ParseMutationKind(%q) error = %v, want InputError", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMutationKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestMutateLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	started, err := env.sessions.Mutate(adminID, gameID, MutationStart)
	if err != nil {
		t.Fatalf("START: %v", err)
	}
	if started.SessionID == nil {
		t.Fatal("START returned no session id")
	}

	status, err := env.sessions.Status(adminID, *started.SessionID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Active || status.Position != -1 {
		t.Errorf("status = %+v, want active lobby", status)
	}

	advanced, err := env.sessions.Mutate(adminID, gameID, MutationAdvance)
	if err != nil {
		t.Fatalf("ADVANCE: %v", err)
	}
	if advanced.Position == nil || *advanced.Position != 0 {
		t.Errorf("position = %v, want 0", advanced.Position)
	}

	if _, err := env.sessions.Mutate(adminID, gameID, MutationEnd); err != nil {
		t.Fatalf("END: %v", err)
	}

	results, err := env.sessions.Results(adminID, *started.SessionID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want none (no players joined)", results)
	}
}

func TestMutateEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := createAdmin(t, env.db, "a@b.com")
	stranger := createAdmin(t, env.db, "b@b.com")
	gameID := createGame(t, env.db, owner)

	if _, err := env.sessions.Mutate(stranger, gameID, MutationStart); !apperr.IsInput(err) {
		t.Errorf("stranger START error = %v, want InputError", err)
	}

	started, err := env.sessions.Mutate(owner, gameID, MutationStart)
	if err != nil {
		t.Fatalf("START: %v", err)
	}
	if _, err := env.sessions.Status(stranger, *started.SessionID); !apperr.IsInput(err) {
		t.Errorf("stranger Status error = %v, want InputError", err)
	}
	if _, err := env.sessions.Results(stranger, *started.SessionID); !apperr.IsInput(err) {
		t.Errorf("stranger Results error = %v, want InputError", err)
	}
}

func TestMutateSecondStartRejected(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	if _, err := env.sessions.Mutate(adminID, gameID, MutationStart); err != nil {
		t.Fatalf("first START: %v", err)
	}
	if _, err := env.sessions.Mutate(adminID, gameID, MutationStart); !apperr.IsInput(err) {
		t.Errorf("second START error = %v, want InputError", err)
	}
}

func TestSessionSnapshotSurvivesGameEdit(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	started, err := env.sessions.Mutate(adminID, gameID, MutationStart)
	if err != nil {
		t.Fatalf("START: %v", err)
	}

	// Replace the stored question list while the session runs.
	if _, err := env.games.BulkUpsert(adminID, []GameInput{{
		ID:   gameID,
		Name: "Edited",
		Questions: []QuestionInput{
			{Text: "brand new", Duration: 5},
			{Text: "another", Duration: 5},
		},
	}}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}

	status, err := env.sessions.Status(adminID, *started.SessionID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Questions) != 1 || status.Questions[0].Text != "what is 1+1?" {
		t.Errorf("session questions changed under edit: %+v", status.Questions)
	}
}

func TestSessionsForGame(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	first, err := env.sessions.Mutate(adminID, gameID, MutationStart)
	if err != nil {
		t.Fatalf("START: %v", err)
	}
	if _, err := env.sessions.Mutate(adminID, gameID, MutationEnd); err != nil {
		t.Fatalf("END: %v", err)
	}
	second, err := env.sessions.Mutate(adminID, gameID, MutationStart)
	if err != nil {
		t.Fatalf("second START: %v", err)
	}

	history, err := env.sessions.SessionsForGame(adminID, gameID)
	if err != nil {
		t.Fatalf("SessionsForGame: %v", err)
	}
	if history.ActiveSessionID == nil || *history.ActiveSessionID != *second.SessionID {
		t.Errorf("active = %v, want %d", history.ActiveSessionID, *second.SessionID)
	}
	if len(history.InactiveSessionIDs) != 1 || history.InactiveSessionIDs[0] != *first.SessionID {
		t.Errorf("inactive = %v, want [%d]", history.InactiveSessionIDs, *first.SessionID)
	}
}

func TestPlayerFlowThroughServices(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	started, err := env.sessions.Mutate(adminID, gameID, MutationStart)
	if err != nil {
		t.Fatalf("START: %v", err)
	}

	playerID, err := env.players.Join(*started.SessionID, "Alice")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	if _, err := env.sessions.Mutate(adminID, gameID, MutationAdvance); err != nil {
		t.Fatalf("ADVANCE: %v", err)
	}

	question, err := env.players.Question(playerID)
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	var correctID uint
	var game models.Game
	if err := env.db.Preload("Questions.Options").First(&game, gameID).Error; err != nil {
		t.Fatalf("load game: %v", err)
	}
	for _, o := range game.Questions[0].Options {
		if o.IsCorrect {
			correctID = o.ID
		}
	}
	if len(question.Options) != 2 {
		t.Errorf("player question options = %d, want 2", len(question.Options))
	}

	if err := env.players.Submit(playerID, []uint{correctID}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := env.sessions.Mutate(adminID, gameID, MutationEnd); err != nil {
		t.Fatalf("END: %v", err)
	}

	answers, err := env.players.Results(playerID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(answers) != 1 || !answers[0].Correct {
		t.Errorf("answers = %+v, want single correct record", answers)
	}

	sessionResults, err := env.sessions.Results(adminID, *started.SessionID)
	if err != nil {
		t.Fatalf("session Results: %v", err)
	}
	if len(sessionResults) != 1 || sessionResults[0].Name != "Alice" {
		t.Errorf("session results = %+v", sessionResults)
	}
}

func TestResetWipesEverything(t *testing.T) {
	env := newTestEnv(t)
	adminID := createAdmin(t, env.db, "a@b.com")
	gameID := createGame(t, env.db, adminID)

	if _, err := env.sessions.Mutate(adminID, gameID, MutationStart); err != nil {
		t.Fatalf("START: %v", err)
	}

	if err := Reset(env.db, env.registry); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if _, err := env.sessions.Mutate(adminID, gameID, MutationEnd); !apperr.IsInput(err) {
		t.Errorf("Mutate after Reset error = %v, want InputError", err)
	}

	var admins, games int64
	env.db.Model(&models.Admin{}).Count(&admins)
	env.db.Model(&models.Game{}).Count(&games)
	if admins != 0 || games != 0 {
		t.Errorf("admins = %d, games = %d after Reset, want 0, 0", admins, games)
	}
}
