package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gateTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func activeEvent() *Event {
	return &Event{
		ID:       1,
		Title:    "Park Cleanup",
		StartsOn: gateTime,
		EndsOn:   gateTime.Add(4 * time.Hour),
		Visible:  true,
		Status:   EventStatusActive,
	}
}

func student(id int32) *Actor { return &Actor{UserID: id, Role: RoleStudent} }

func TestDecideJoin(t *testing.T) {
	t.Run("StudentJoins", func(t *testing.T) {
		ev := activeEvent()
		intents, err := DecideJoin(42, Credential{Actor: student(42)}, ev)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, IntentRegistrationReceived, intents[0].Kind)
		assert.Equal(t, int32(42), intents[0].UserID)
	})

	t.Run("CancelledEvent", func(t *testing.T) {
		ev := activeEvent()
		ev.Status = EventStatusCancelled
		_, err := DecideJoin(42, Credential{Actor: student(42)}, ev)
		assert.ErrorIs(t, err, ErrEventNotActive)
	})

	t.Run("StaffCannotSelfJoin", func(t *testing.T) {
		ev := activeEvent()
		_, err := DecideJoin(42, Credential{Actor: &Actor{UserID: 42, Role: RoleStaff}}, ev)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("JoinOnBehalfRejected", func(t *testing.T) {
		ev := activeEvent()
		_, err := DecideJoin(42, Credential{Actor: student(43)}, ev)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("AnonymousNeedsValidToken", func(t *testing.T) {
		ev := activeEvent()
		_, err := DecideJoin(42, Credential{PublicToken: "nope"}, ev)
		assert.ErrorIs(t, err, ErrTokenInvalid)

		token := "open-sesame"
		ev.PublicToken = &token
		_, err = DecideJoin(42, Credential{PublicToken: "wrong"}, ev)
		assert.ErrorIs(t, err, ErrTokenInvalid)

		_, err = DecideJoin(42, Credential{PublicToken: "open-sesame"}, ev)
		assert.NoError(t, err)
	})

	t.Run("HiddenEvent", func(t *testing.T) {
		ev := activeEvent()
		ev.Visible = false
		_, err := DecideJoin(42, Credential{Actor: student(42)}, ev)
		assert.ErrorIs(t, err, ErrEventNotVisible)
	})

	t.Run("Duplicate", func(t *testing.T) {
		ev := activeEvent()
		ev.Entries = []RegistrationEntry{*NewRegistrationEntry(1, 42, gateTime)}
		_, err := DecideJoin(42, Credential{Actor: student(42)}, ev)
		assert.ErrorIs(t, err, ErrDuplicateRegistration)
	})

	t.Run("Capacity", func(t *testing.T) {
		ev := activeEvent()
		capacity := int32(1)
		ev.Capacity = &capacity
		ev.Entries = []RegistrationEntry{*NewRegistrationEntry(1, 42, gateTime)}
		_, err := DecideJoin(43, Credential{Actor: student(43)}, ev)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("DisapprovedSeatIsReleased", func(t *testing.T) {
		ev := activeEvent()
		capacity := int32(1)
		ev.Capacity = &capacity
		taken := NewRegistrationEntry(1, 42, gateTime)
		require.NoError(t, taken.DisapproveRegistration(7, "no-show history", gateTime))
		ev.Entries = []RegistrationEntry{*taken}

		_, err := DecideJoin(43, Credential{Actor: student(43)}, ev)
		assert.NoError(t, err)
	})
}

func TestDecide_RegistrationDecisions(t *testing.T) {
	staff := Actor{UserID: 7, Role: RoleStaff}

	t.Run("EntryNotFound", func(t *testing.T) {
		ev := activeEvent()
		_, err := Decide(CommandApproveRegistration, staff, nil, ev, "")
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("StudentCannotApprove", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		_, err := Decide(CommandApproveRegistration, Actor{UserID: 42, Role: RoleStudent}, entry, ev, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("ApproveEmitsDecisionIntent", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		intents, err := Decide(CommandApproveRegistration, staff, entry, ev, "")
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, IntentRegistrationDecision, intents[0].Kind)
		assert.True(t, intents[0].Approved)
	})

	t.Run("DisapproveNeedsReason", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		_, err := Decide(CommandDisapproveRegistration, staff, entry, ev, "")
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		require.NoError(t, entry.ApproveRegistration(7, gateTime))
		_, err := Decide(CommandApproveRegistration, staff, entry, ev, "")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestDecide_TimeCommands(t *testing.T) {
	ev := activeEvent()
	entry := NewRegistrationEntry(1, 42, gateTime)
	require.NoError(t, entry.ApproveRegistration(7, gateTime))

	t.Run("SelfService", func(t *testing.T) {
		intents, err := Decide(CommandTimeIn, Actor{UserID: 42, Role: RoleStudent}, entry, ev, "")
		assert.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("StaffOnBehalf", func(t *testing.T) {
		_, err := Decide(CommandTimeOut, Actor{UserID: 7, Role: RoleStaff}, entry, ev, "")
		assert.NoError(t, err)
	})

	t.Run("OtherStudentRejected", func(t *testing.T) {
		_, err := Decide(CommandTimeIn, Actor{UserID: 99, Role: RoleStudent}, entry, ev, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("PendingRegistrationRejected", func(t *testing.T) {
		pending := NewRegistrationEntry(1, 50, gateTime)
		_, err := Decide(CommandTimeIn, Actor{UserID: 50, Role: RoleStudent}, pending, ev, "")
		assert.ErrorIs(t, err, ErrRegistrationNotApproved)
	})
}

func TestDecide_AttendanceDecisions(t *testing.T) {
	staff := Actor{UserID: 7, Role: RoleStaff}

	t.Run("NoTimeRecorded", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		require.NoError(t, entry.ApproveRegistration(7, gateTime))
		_, err := Decide(CommandApproveAttendance, staff, entry, ev, "")
		assert.ErrorIs(t, err, ErrNoAttendanceRecorded)
	})

	t.Run("AttendedEntryApprovable", func(t *testing.T) {
		ev := activeEvent()
		entry := NewRegistrationEntry(1, 42, gateTime)
		require.NoError(t, entry.ApproveRegistration(7, gateTime))
		require.NoError(t, entry.RecordTimeIn(42, gateTime))
		require.NoError(t, entry.RecordTimeOut(42, gateTime.Add(2*time.Hour)))

		intents, err := Decide(CommandApproveAttendance, staff, entry, ev, "")
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, IntentAttendanceDecision, intents[0].Kind)
		assert.True(t, intents[0].Approved)
	})
}
