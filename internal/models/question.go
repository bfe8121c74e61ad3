package models

type Question struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	GameID   uint     `gorm:"not null;index" json:"game_id"`
	Text     string   `gorm:"type:text;not null" json:"text"`
	Duration int      `gorm:"not null" json:"duration"`
	Points   int      `gorm:"not null;default:0" json:"points"`
	OrderNum int      `gorm:"not null" json:"order_num"`
	Options  []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// CorrectOptionIDs returns the ids of the options marked correct.
func (q Question) CorrectOptionIDs() []uint {
	var ids []uint
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
