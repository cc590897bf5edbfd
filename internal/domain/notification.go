package domain

type IntentKind string

const (
	IntentRegistrationReceived IntentKind = "REGISTRATION_RECEIVED"
	IntentRegistrationDecision IntentKind = "REGISTRATION_DECISION"
	IntentAttendanceDecision   IntentKind = "ATTENDANCE_DECISION"
)

// NotificationIntent describes a notification to be sent, not the act of
// sending it. The state machine returns intents; an external dispatcher
// delivers them (at-least-once) after the state change is committed.
type NotificationIntent struct {
	Kind     IntentKind `json:"kind"`
	EventID  int32      `json:"event_id"`
	UserID   int32      `json:"user_id"` // recipient
	Approved bool       `json:"approved,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}

// Notification is a stored in-app notification row.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	EventID    int32             `json:"event_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
