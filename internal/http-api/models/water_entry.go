package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaterEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Date      string    `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	AmountML  int       `gorm:"not null" json:"amount_ml"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (w *WaterEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}

func (WaterEntry) TableName() string {
	return "water_entries"
}
