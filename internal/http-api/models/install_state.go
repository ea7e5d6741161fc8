package models

import "time"

// Platforms reported by the client
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformDesktop = "desktop"
	PlatformUnknown = "unknown"
)

// InstallState tracks whether the PWA install prompt was offered to a user.
// PromptShown persists across sessions until explicitly reset.
type InstallState struct {
	UserID      string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CanInstall  bool      `gorm:"default:false" json:"can_install"`
	IsInstalled bool      `gorm:"default:false" json:"is_installed"`
	Platform    string    `gorm:"default:'unknown'" json:"platform"`
	PromptShown bool      `gorm:"default:false" json:"prompt_shown"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (InstallState) TableName() string {
	return "install_states"
}
