package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeightEntry is one weigh-in; at most one per user per day.
type WeightEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uidx_weight_user_date" json:"user_id"`
	Date      string    `gorm:"type:date;not null;uniqueIndex:uidx_weight_user_date" json:"date"` // YYYY-MM-DD
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (w *WeightEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}

func (WeightEntry) TableName() string {
	return "weight_entries"
}
