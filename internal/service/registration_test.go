package service

import (
	"context"
	"testing"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var svcTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestRegistrationService(repo *MockEventRepo, disp *MockDispatcher) *registrationService {
	return &registrationService{
		eventRepo:  repo,
		dispatcher: disp,
		locks:      newEventLocks(),
		now:        func() time.Time { return svcTime },
	}
}

func serviceEvent() *domain.Event {
	return &domain.Event{
		ID:       1,
		Title:    "River Cleanup",
		StartsOn: svcTime,
		EndsOn:   svcTime.Add(4 * time.Hour),
		Visible:  true,
		Status:   domain.EventStatusActive,
		Version:  3,
	}
}

func TestRegistrationService_Join(t *testing.T) {
	t.Run("SavesBeforeDispatching", func(t *testing.T) {
		repo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := newTestRegistrationService(repo, disp)

		ev := serviceEvent()
		saved := false
		repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)
		repo.On("Save", mock.Anything, ev).Run(func(args mock.Arguments) {
			saved = true
		}).Return(nil)
		disp.On("Dispatch", mock.Anything, ev, mock.MatchedBy(func(intents []domain.NotificationIntent) bool {
			return saved && len(intents) == 1 && intents[0].Kind == domain.IntentRegistrationReceived
		})).Return()

		entry, err := svc.Join(context.Background(), 1, domain.Actor{UserID: 42, Role: domain.RoleStudent})
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusPending, entry.RegistrationStatus)

		repo.AssertExpectations(t)
		disp.AssertExpectations(t)
	})

	t.Run("SaveFailureEmitsNothing", func(t *testing.T) {
		repo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := newTestRegistrationService(repo, disp)

		repo.On("GetByID", mock.Anything, int32(1)).Return(serviceEvent(), nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict)

		_, err := svc.Join(context.Background(), 1, domain.Actor{UserID: 42, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, repository.ErrVersionConflict)

		disp.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CapacityErrorSkipsSave", func(t *testing.T) {
		repo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := newTestRegistrationService(repo, disp)

		ev := serviceEvent()
		capacity := int32(1)
		ev.Capacity = &capacity
		ev.Entries = []domain.RegistrationEntry{*domain.NewRegistrationEntry(1, 42, svcTime)}
		repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)

		_, err := svc.Join(context.Background(), 1, domain.Actor{UserID: 43, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		disp.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TokenJoin", func(t *testing.T) {
		repo := new(MockEventRepo)
		disp := new(MockDispatcher)
		svc := newTestRegistrationService(repo, disp)

		ev := serviceEvent()
		token := "8b4f2d1e"
		ev.PublicToken = &token
		repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)
		repo.On("Save", mock.Anything, ev).Return(nil)
		disp.On("Dispatch", mock.Anything, ev, mock.Anything).Return()

		entry, err := svc.JoinWithToken(context.Background(), 1, 42, "8b4f2d1e")
		require.NoError(t, err)
		assert.Equal(t, int32(42), entry.UserID)

		_, err = svc.JoinWithToken(context.Background(), 1, 43, "bad-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}

func TestRegistrationService_ApproveRegistration(t *testing.T) {
	repo := new(MockEventRepo)
	disp := new(MockDispatcher)
	svc := newTestRegistrationService(repo, disp)

	ev := serviceEvent()
	ev.Entries = []domain.RegistrationEntry{*domain.NewRegistrationEntry(1, 42, svcTime)}
	repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)
	repo.On("Save", mock.Anything, ev).Return(nil)
	disp.On("Dispatch", mock.Anything, ev, mock.MatchedBy(func(intents []domain.NotificationIntent) bool {
		return len(intents) == 1 && intents[0].Kind == domain.IntentRegistrationDecision && intents[0].Approved
	})).Return()

	err := svc.ApproveRegistration(context.Background(), 1, 42, domain.Actor{UserID: 7, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusApproved, ev.Entry(42).RegistrationStatus)

	repo.AssertExpectations(t)
	disp.AssertExpectations(t)
}

func TestRegistrationService_TimeCommands(t *testing.T) {
	repo := new(MockEventRepo)
	disp := new(MockDispatcher)
	svc := newTestRegistrationService(repo, disp)

	ev := serviceEvent()
	entry := domain.NewRegistrationEntry(1, 42, svcTime)
	require.NoError(t, entry.ApproveRegistration(7, svcTime))
	ev.Entries = []domain.RegistrationEntry{*entry}

	repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)
	repo.On("Save", mock.Anything, ev).Return(nil)
	disp.On("Dispatch", mock.Anything, ev, mock.Anything).Return()

	self := domain.Actor{UserID: 42, Role: domain.RoleStudent}
	require.NoError(t, svc.TimeIn(context.Background(), 1, 42, self))
	require.NoError(t, svc.TimeOut(context.Background(), 1, 42, self))

	got := ev.Entry(42)
	assert.Equal(t, domain.AttendanceStatusAttended, got.AttendanceStatus)
	require.Len(t, got.Ledger.Records, 1)
	assert.True(t, got.Ledger.Records[0].Closed())
}

func TestRegistrationService_ListEntries(t *testing.T) {
	repo := new(MockEventRepo)
	svc := newTestRegistrationService(repo, new(MockDispatcher))

	t.Run("StudentRejected", func(t *testing.T) {
		_, err := svc.ListEntries(context.Background(), 1, domain.Actor{UserID: 42, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("StaffAllowed", func(t *testing.T) {
		ev := serviceEvent()
		ev.Entries = []domain.RegistrationEntry{*domain.NewRegistrationEntry(1, 42, svcTime)}
		repo.On("GetByID", mock.Anything, int32(1)).Return(ev, nil)

		entries, err := svc.ListEntries(context.Background(), 1, domain.Actor{UserID: 7, Role: domain.RoleStaff})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
