package services

import (
	"bigbrain-backend/internal/models"
	"bigbrain-backend/internal/store"

	"gorm.io/gorm"
)

// Reset wipes the in-memory session registry and the persisted admin
// and game tables. Used only for test isolation.
func Reset(db *gorm.DB, registry *store.Registry) error {
	registry.Reset()

	for _, model := range []interface{}{
		&models.Option{},
		&models.Question{},
		&models.Game{},
		&models.Admin{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
