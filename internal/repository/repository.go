package repository

import (
	"context"
	"errors"
	"time"

	"servicehours-backend/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned by EventRepository.Save when the aggregate
// was modified by another writer since it was loaded.
var ErrVersionConflict = errors.New("event version conflict")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	// GetByID loads the full aggregate: the event row plus its entries and
	// their time records.
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	// Save persists the whole aggregate in one transaction, guarded by the
	// event's version column.
	Save(ctx context.Context, event *domain.Event) error
	ListVisible(ctx context.Context) ([]domain.Event, error)
	ListByParticipant(ctx context.Context, userID int32) ([]domain.Event, error)
	// ListStartingBetween returns active events whose start time falls in the
	// given window, entries included. Used by the reminder job.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
