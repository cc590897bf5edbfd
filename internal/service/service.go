package service

import (
	"context"

	"servicehours-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) error
	GetEvent(ctx context.Context, id int32) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CancelEvent(ctx context.Context, actor domain.Actor, id int32) error
	// EnablePublicRegistration issues (or rotates) the event's public
	// registration token and returns it.
	EnablePublicRegistration(ctx context.Context, actor domain.Actor, id int32) (string, error)
	DisablePublicRegistration(ctx context.Context, actor domain.Actor, id int32) error
}

// RegistrationService is the single entry point for all state-machine
// commands against an event aggregate. Commands are serialized per event and
// persisted before any notification is dispatched.
type RegistrationService interface {
	Join(ctx context.Context, eventID int32, actor domain.Actor) (*domain.RegistrationEntry, error)
	JoinWithToken(ctx context.Context, eventID, userID int32, token string) (*domain.RegistrationEntry, error)
	ApproveRegistration(ctx context.Context, eventID, userID int32, actor domain.Actor) error
	DisapproveRegistration(ctx context.Context, eventID, userID int32, actor domain.Actor, reason string) error
	ApproveAttendance(ctx context.Context, eventID, userID int32, actor domain.Actor) error
	DisapproveAttendance(ctx context.Context, eventID, userID int32, actor domain.Actor, reason string) error
	TimeIn(ctx context.Context, eventID, userID int32, actor domain.Actor) error
	TimeOut(ctx context.Context, eventID, userID int32, actor domain.Actor) error
	ListEntries(ctx context.Context, eventID int32, actor domain.Actor) ([]domain.RegistrationEntry, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// Dispatcher delivers notification intents after a command has been
// committed. Delivery is at-least-once; failures are logged, never
// propagated back into the command result.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.Event, intents []domain.NotificationIntent)
}

// UserHours is one row of a participant's accumulated-hours report.
type UserHours struct {
	EventID    int32   `json:"event_id"`
	EventTitle string  `json:"event_title"`
	Hours      float64 `json:"hours"`
	Credited   bool    `json:"credited"` // attendance approved by staff
}

type ReportService interface {
	GetUserHours(ctx context.Context, userID int32) ([]UserHours, float64, error)
	GetEventHours(ctx context.Context, actor domain.Actor, eventID int32) (map[int32]float64, error)
}

type EmailService interface {
	SendRegistrationReceived(ctx context.Context, email, name, eventTitle string) error
	SendRegistrationDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error
	SendAttendanceDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error
	SendEventReminder(ctx context.Context, email, name, eventTitle, startsOn string) error
	SendPendingApprovalsDigest(ctx context.Context, email, name string, pendingCount int32) error
}
