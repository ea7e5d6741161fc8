package dto

import "myka/internal/http-api/models"

// CreateNotificationRequest: payload for scheduling a reminder
type CreateNotificationRequest struct {
	Time           string                      `json:"time" binding:"required"` // HH:MM
	Title          string                      `json:"title" binding:"required"`
	Body           string                      `json:"body" binding:"required"`
	Type           string                      `json:"type" binding:"required"`
	Actions        []models.NotificationAction `json:"actions"`
	Enabled        *bool                       `json:"enabled,omitempty"` // default true
	Recurring      *bool                       `json:"recurring,omitempty"`
	SnoozeEnabled  bool                        `json:"snooze_enabled"`
	SnoozeDuration int                         `json:"snooze_duration"` // minutes
}

// UpdateNotificationRequest: partial update; time changes re-arm the timer
type UpdateNotificationRequest struct {
	Time           *string                      `json:"time,omitempty"`
	Title          *string                      `json:"title,omitempty"`
	Body           *string                      `json:"body,omitempty"`
	Type           *string                      `json:"type,omitempty"`
	Actions        *[]models.NotificationAction `json:"actions,omitempty"`
	Enabled        *bool                        `json:"enabled,omitempty"`
	Recurring      *bool                        `json:"recurring,omitempty"`
	SnoozeEnabled  *bool                        `json:"snooze_enabled,omitempty"`
	SnoozeDuration *int                         `json:"snooze_duration,omitempty"`
}

func (r UpdateNotificationRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Time != nil {
		fields["time"] = *r.Time
	}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Body != nil {
		fields["body"] = *r.Body
	}
	if r.Type != nil {
		fields["type"] = *r.Type
	}
	if r.Actions != nil {
		fields["actions"] = *r.Actions
	}
	if r.Enabled != nil {
		fields["enabled"] = *r.Enabled
	}
	if r.Recurring != nil {
		fields["recurring"] = *r.Recurring
	}
	if r.SnoozeEnabled != nil {
		fields["snooze_enabled"] = *r.SnoozeEnabled
	}
	if r.SnoozeDuration != nil {
		fields["snooze_duration"] = *r.SnoozeDuration
	}
	return fields
}

// ActionTargetResponse: resolved navigation target for a quick action
type ActionTargetResponse struct {
	ActionID string `json:"action_id"`
	Target   string `json:"target"`
}
