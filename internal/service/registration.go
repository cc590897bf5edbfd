package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/repository"
)

// eventLocks serializes commands per event id. Combined with the version
// check in EventRepository.Save, this gives single-writer discipline inside
// the process and lost-update detection across processes.
type eventLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[int32]*sync.Mutex)}
}

func (l *eventLocks) lock(eventID int32) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m
}

type registrationService struct {
	eventRepo  repository.EventRepository
	dispatcher Dispatcher
	locks      *eventLocks
	now        func() time.Time
}

func NewRegistrationService(eventRepo repository.EventRepository, dispatcher Dispatcher) RegistrationService {
	return &registrationService{
		eventRepo:  eventRepo,
		dispatcher: dispatcher,
		locks:      newEventLocks(),
		now:        time.Now,
	}
}

func (s *registrationService) Join(ctx context.Context, eventID int32, actor domain.Actor) (*domain.RegistrationEntry, error) {
	return s.join(ctx, eventID, actor.UserID, domain.Credential{Actor: &actor})
}

func (s *registrationService) JoinWithToken(ctx context.Context, eventID, userID int32, token string) (*domain.RegistrationEntry, error) {
	return s.join(ctx, eventID, userID, domain.Credential{PublicToken: token})
}

func (s *registrationService) join(ctx context.Context, eventID, userID int32, cred domain.Credential) (*domain.RegistrationEntry, error) {
	mu := s.locks.lock(eventID)
	defer mu.Unlock()

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entry, intents, err := ev.CreateEntry(userID, cred, s.now())
	if err != nil {
		return nil, err
	}

	// Commit before dispatch: a notification failure must never roll back a
	// registration, and a failed save must emit nothing.
	if err := s.eventRepo.Save(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to save event %d: %w", eventID, err)
	}
	s.dispatcher.Dispatch(ctx, ev, intents)

	return entry, nil
}

func (s *registrationService) ApproveRegistration(ctx context.Context, eventID, userID int32, actor domain.Actor) error {
	return s.apply(ctx, eventID, userID, domain.CommandApproveRegistration, actor, "")
}

func (s *registrationService) DisapproveRegistration(ctx context.Context, eventID, userID int32, actor domain.Actor, reason string) error {
	return s.apply(ctx, eventID, userID, domain.CommandDisapproveRegistration, actor, reason)
}

func (s *registrationService) ApproveAttendance(ctx context.Context, eventID, userID int32, actor domain.Actor) error {
	return s.apply(ctx, eventID, userID, domain.CommandApproveAttendance, actor, "")
}

func (s *registrationService) DisapproveAttendance(ctx context.Context, eventID, userID int32, actor domain.Actor, reason string) error {
	return s.apply(ctx, eventID, userID, domain.CommandDisapproveAttendance, actor, reason)
}

func (s *registrationService) TimeIn(ctx context.Context, eventID, userID int32, actor domain.Actor) error {
	return s.apply(ctx, eventID, userID, domain.CommandTimeIn, actor, "")
}

func (s *registrationService) TimeOut(ctx context.Context, eventID, userID int32, actor domain.Actor) error {
	return s.apply(ctx, eventID, userID, domain.CommandTimeOut, actor, "")
}

func (s *registrationService) apply(ctx context.Context, eventID, userID int32, cmd domain.Command, actor domain.Actor, reason string) error {
	mu := s.locks.lock(eventID)
	defer mu.Unlock()

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	intents, err := ev.ApplyDecision(userID, cmd, actor, reason, s.now())
	if err != nil {
		return err
	}

	if err := s.eventRepo.Save(ctx, ev); err != nil {
		return fmt.Errorf("failed to save event %d: %w", eventID, err)
	}
	s.dispatcher.Dispatch(ctx, ev, intents)

	return nil
}

func (s *registrationService) ListEntries(ctx context.Context, eventID int32, actor domain.Actor) ([]domain.RegistrationEntry, error) {
	if !actor.Role.CanApprove() {
		return nil, domain.ErrUnauthorized
	}
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return ev.Entries, nil
}
