package services

import (
	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/models"

	"gorm.io/gorm"
)

type GameService struct {
	db    *gorm.DB
	gates *gate.Gates
}

func NewGameService(db *gorm.DB, gates *gate.Gates) *GameService {
	return &GameService{db: db, gates: gates}
}

type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text     string        `json:"text"`
	Duration int           `json:"duration"`
	Points   int           `json:"points"`
	Options  []OptionInput `json:"options"`
}

type GameInput struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Thumbnail string          `json:"thumbnail"`
	Questions []QuestionInput `json:"questions"`
}

func (s *GameService) GamesForOwner(adminID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("admin_id = ?", adminID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options").
		Order("created_at DESC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// AssertOwnsGame loads the game with its questions and fails when it
// does not exist or belongs to a different admin.
func (s *GameService) AssertOwnsGame(adminID, gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Where("id = ? AND admin_id = ?", gameID, adminID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options").
		First(&game).Error
	if err != nil {
		return nil, apperr.Input("Game ID does not refer to a game owned by this admin")
	}
	return &game, nil
}

// BulkUpsert reconciles the client's full game list against storage for
// one owner: stored games absent from the request are deleted, id-less
// entries are created, entries with an id are updated when owned. An
// owned match of zero rows falls back to creating a record with the
// client-supplied id, mirroring the original platform's behaviour.
func (s *GameService) BulkUpsert(adminID uint, inputs []GameInput) ([]models.Game, error) {
	err := s.gates.Game.Do(func() error {
		var stored []models.Game
		if err := s.db.Where("admin_id = ?", adminID).Find(&stored).Error; err != nil {
			return err
		}

		requested := make(map[uint]bool, len(inputs))
		for _, in := range inputs {
			if in.ID != 0 {
				requested[in.ID] = true
			}
		}

		tx := s.db.Begin()
		if tx.Error != nil {
			return tx.Error
		}

		for _, g := range stored {
			if !requested[g.ID] {
				if err := deleteGame(tx, g.ID); err != nil {
					tx.Rollback()
					return err
				}
			}
		}

		for _, in := range inputs {
			if err := upsertGame(tx, adminID, in); err != nil {
				tx.Rollback()
				return err
			}
		}

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}
	return s.GamesForOwner(adminID)
}

func deleteGame(tx *gorm.DB, gameID uint) error {
	if err := tx.Where("question_id IN (SELECT id FROM questions WHERE game_id = ?)", gameID).
		Delete(&models.Option{}).Error; err != nil {
		return err
	}
	if err := tx.Where("game_id = ?", gameID).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Game{}, gameID).Error
}

func upsertGame(tx *gorm.DB, adminID uint, in GameInput) error {
	if in.ID == 0 {
		game := models.Game{
			AdminID:   adminID,
			Name:      in.Name,
			Thumbnail: in.Thumbnail,
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		return replaceQuestions(tx, game.ID, in.Questions)
	}

	var existing models.Game
	if err := tx.Where("id = ? AND admin_id = ?", in.ID, adminID).First(&existing).Error; err != nil {
		game := models.Game{
			ID:        in.ID,
			AdminID:   adminID,
			Name:      in.Name,
			Thumbnail: in.Thumbnail,
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		return replaceQuestions(tx, game.ID, in.Questions)
	}

	existing.Name = in.Name
	existing.Thumbnail = in.Thumbnail
	if err := tx.Save(&existing).Error; err != nil {
		return err
	}
	return replaceQuestions(tx, existing.ID, in.Questions)
}

func replaceQuestions(tx *gorm.DB, gameID uint, inputs []QuestionInput) error {
	if err := tx.Where("question_id IN (SELECT id FROM questions WHERE game_id = ?)", gameID).
		Delete(&models.Option{}).Error; err != nil {
		return err
	}
	if err := tx.Where("game_id = ?", gameID).Delete(&models.Question{}).Error; err != nil {
		return err
	}

	for i, in := range inputs {
		question := models.Question{
			GameID:   gameID,
			Text:     in.Text,
			Duration: in.Duration,
			Points:   in.Points,
			OrderNum: i,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, o := range in.Options {
			opt := models.Option{
				QuestionID: question.ID,
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
			}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
