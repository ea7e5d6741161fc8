package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoutineConfig holds a user's morning routine: which tasks are active and
// which days of the week the routine applies to. TasksDone tracks per-day
// completion and is keyed by "YYYY-MM-DD:<task>".
type RoutineConfig struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Tasks     []string  `gorm:"serializer:json" json:"tasks"`
	TasksDone []string  `gorm:"serializer:json" json:"tasks_done"`
	Weekdays  []int     `gorm:"serializer:json" json:"weekdays"` // 0=Sunday .. 6=Saturday
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (r *RoutineConfig) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (RoutineConfig) TableName() string {
	return "routine_configs"
}
