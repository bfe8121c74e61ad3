package models

import "time"

type Game struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AdminID   uint       `gorm:"not null;index" json:"admin_id"`
	Admin     Admin      `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Thumbnail string     `gorm:"type:text" json:"thumbnail,omitempty"`
	Questions []Question `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
