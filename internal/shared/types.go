package shared

// shared types across the application: the push payload delivered to
// connected PWA clients, used by both the scheduler and the notify hub

// PushAction is an action button on a delivered notification, with its
// navigation target already resolved server-side.
type PushAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon,omitempty"`
	Target string `json:"target"`
}

// PushMessage is the wire format sent over the WebSocket channel.
// Kind is one of "notification", "permission-request", "install-prompt".
type PushMessage struct {
	Kind           string       `json:"kind"`
	RequestID      string       `json:"request_id,omitempty"`
	NotificationID string       `json:"notification_id,omitempty"`
	Title          string       `json:"title,omitempty"`
	Body           string       `json:"body,omitempty"`
	Type           string       `json:"type,omitempty"`
	Actions        []PushAction `json:"actions,omitempty"`
	SnoozeEnabled  bool         `json:"snooze_enabled,omitempty"`
}
