package service

import (
	"context"
	"time"

	"servicehours-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Save(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) ListVisible(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListByParticipant(ctx context.Context, userID int32) ([]domain.Event, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationReceived(ctx context.Context, email, name, eventTitle string) error {
	args := m.Called(ctx, email, name, eventTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error {
	args := m.Called(ctx, email, name, eventTitle, approved, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendAttendanceDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error {
	args := m.Called(ctx, email, name, eventTitle, approved, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendEventReminder(ctx context.Context, email, name, eventTitle, startsOn string) error {
	args := m.Called(ctx, email, name, eventTitle, startsOn)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingApprovalsDigest(ctx context.Context, email, name string, pendingCount int32) error {
	args := m.Called(ctx, email, name, pendingCount)
	return args.Error(0)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event *domain.Event, intents []domain.NotificationIntent) {
	m.Called(ctx, event, intents)
}
