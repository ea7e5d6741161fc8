package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Meal struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	MealType  string    `gorm:"not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	Name      string    `gorm:"not null" json:"name"`
	Calories  int       `json:"calories,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Date      string    `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (Meal) TableName() string {
	return "meals"
}
