package service

import (
	"context"
	"errors"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidEvent = errors.New("invalid event")

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, ev *domain.Event) error {
	if !actor.Role.CanApprove() {
		return domain.ErrUnauthorized
	}
	if ev.Title == "" {
		return ErrInvalidEvent
	}
	if !ev.EndsOn.After(ev.StartsOn) {
		return ErrInvalidEvent
	}
	if ev.Capacity != nil && *ev.Capacity <= 0 {
		return ErrInvalidEvent
	}
	ev.Status = domain.EventStatusActive
	ev.CreatedBy = actor.UserID
	ev.CreatedOn = time.Now()
	return s.eventRepo.Create(ctx, ev)
}

func (s *eventService) GetEvent(ctx context.Context, id int32) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.ListVisible(ctx)
}

// CancelEvent soft-cancels: entries keep referencing the event, new commands
// are refused by the gate.
func (s *eventService) CancelEvent(ctx context.Context, actor domain.Actor, id int32) error {
	return s.updateEvent(ctx, actor, id, func(ev *domain.Event) {
		ev.Status = domain.EventStatusCancelled
	})
}

func (s *eventService) EnablePublicRegistration(ctx context.Context, actor domain.Actor, id int32) (string, error) {
	token := uuid.New().String()
	err := s.updateEvent(ctx, actor, id, func(ev *domain.Event) {
		ev.PublicToken = &token
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *eventService) DisablePublicRegistration(ctx context.Context, actor domain.Actor, id int32) error {
	return s.updateEvent(ctx, actor, id, func(ev *domain.Event) {
		ev.PublicToken = nil
	})
}

func (s *eventService) updateEvent(ctx context.Context, actor domain.Actor, id int32, mutate func(*domain.Event)) error {
	if !actor.Role.CanApprove() {
		return domain.ErrUnauthorized
	}
	ev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	mutate(ev)
	return s.eventRepo.Save(ctx, ev)
}
