package models

import "time"

type Admin struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	SessionActive bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
