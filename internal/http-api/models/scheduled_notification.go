package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification categories
const (
	NotificationTypeWeight    = "weight-reminder"
	NotificationTypeHydration = "hydration-reminder"
	NotificationTypeGeneric   = "generic"
)

// NotificationAction is a quick action attached to a fired notification,
// e.g. {id: "log-weight", label: "Log weight", icon: "scale"}.
type NotificationAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// ScheduledNotification is a daily reminder with a time-of-day trigger.
type ScheduledNotification struct {
	ID             string               `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string               `gorm:"type:uuid;not null;index" json:"user_id"`
	RoutineID      *string              `gorm:"type:uuid;index" json:"routine_id,omitempty"` // set when seeded from a routine config
	Time           string               `gorm:"not null" json:"time"`                        // HH:MM wall clock
	Title          string               `gorm:"not null" json:"title"`
	Body           string               `gorm:"not null" json:"body"`
	Type           string               `gorm:"not null" json:"type"` // weight-reminder, hydration-reminder, generic
	Actions        []NotificationAction `gorm:"serializer:json" json:"actions,omitempty"`
	Enabled        bool                 `gorm:"default:true" json:"enabled"`
	Recurring      bool                 `gorm:"default:true" json:"recurring"` // daily re-arm after firing
	SnoozeEnabled  bool                 `gorm:"default:false" json:"snooze_enabled"`
	SnoozeDuration int                  `gorm:"default:10" json:"snooze_duration"` // minutes
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (n *ScheduledNotification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

func (ScheduledNotification) TableName() string {
	return "scheduled_notifications"
}
