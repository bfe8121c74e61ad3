package services

import (
	"testing"

	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/models"
	"bigbrain-backend/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A pooled second connection would see a different empty :memory:
	// database, so pin the pool to one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Game{},
		&models.Question{},
		&models.Option{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	registry *store.Registry
	auth     *AuthService
	games    *GameService
	sessions *SessionService
	players  *PlayerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	gates := gate.NewGates()
	registry := store.NewRegistry()
	games := NewGameService(db, gates)
	return &testEnv{
		db:       db,
		registry: registry,
		auth:     NewAuthService(db, "test-secret", gates),
		games:    games,
		sessions: NewSessionService(db, registry, games, gates),
		players:  NewPlayerService(registry, gates),
	}
}

// createAdmin registers an admin directly and returns its id.
func createAdmin(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	admin := models.Admin{
		Email:         email,
		Name:          "Test Admin",
		PasswordHash:  "x",
		SessionActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin.ID
}

// createGame stores a game with a single 30-second question owned by
// the admin and returns the game id.
func createGame(t *testing.T, db *gorm.DB, adminID uint) uint {
	t.Helper()
	game := models.Game{
		AdminID: adminID,
		Name:    "Trivia Night",
		Questions: []models.Question{{
			Text:     "what is 1+1?",
			Duration: 30,
			Points:   100,
			OrderNum: 0,
			Options: []models.Option{
				{Text: "2", IsCorrect: true},
				{Text: "3"},
			},
		}},
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game.ID
}
