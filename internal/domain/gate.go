package domain

type Command string

const (
	CommandJoin                   Command = "JOIN"
	CommandApproveRegistration    Command = "APPROVE_REGISTRATION"
	CommandDisapproveRegistration Command = "DISAPPROVE_REGISTRATION"
	CommandTimeIn                 Command = "TIME_IN"
	CommandTimeOut                Command = "TIME_OUT"
	CommandApproveAttendance      Command = "APPROVE_ATTENDANCE"
	CommandDisapproveAttendance   Command = "DISAPPROVE_ATTENDANCE"
)

// Credential carries how a join command was authenticated: a signed-in actor,
// or an anonymous caller presenting the event's public registration token.
type Credential struct {
	Actor       *Actor
	PublicToken string
}

// DecideJoin validates a join against the event. Pure: no mutation. Returns
// the notification intents the caller must dispatch after the entry is
// persisted. Rules are evaluated in order; the first failing rule wins.
func DecideJoin(userID int32, cred Credential, event *Event) ([]NotificationIntent, error) {
	if !event.Active() {
		return nil, ErrEventNotActive
	}
	if cred.Actor != nil {
		if cred.Actor.Role != RoleStudent || cred.Actor.UserID != userID {
			return nil, ErrUnauthorized
		}
	} else if !event.TokenMatches(cred.PublicToken) {
		return nil, ErrTokenInvalid
	}
	if !event.Visible {
		return nil, ErrEventNotVisible
	}
	if event.Entry(userID) != nil {
		return nil, ErrDuplicateRegistration
	}
	if event.AtCapacity() {
		return nil, ErrCapacityExceeded
	}
	return []NotificationIntent{{
		Kind:    IntentRegistrationReceived,
		EventID: event.ID,
		UserID:  userID,
	}}, nil
}

// Decide validates a non-join command for the given actor and entry. Pure: no
// mutation. This is the single place authorization and business-rule checks
// live; the entry's effect methods re-check only their own state
// preconditions.
func Decide(cmd Command, actor Actor, entry *RegistrationEntry, event *Event, reason string) ([]NotificationIntent, error) {
	if !event.Active() {
		return nil, ErrEventNotActive
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	switch cmd {
	case CommandApproveRegistration, CommandDisapproveRegistration:
		if !actor.Role.CanApprove() {
			return nil, ErrUnauthorized
		}
		if entry.RegistrationStatus != RegistrationStatusPending {
			return nil, ErrNotPending
		}
		if cmd == CommandDisapproveRegistration && reason == "" {
			return nil, ErrReasonRequired
		}
		return []NotificationIntent{{
			Kind:     IntentRegistrationDecision,
			EventID:  event.ID,
			UserID:   entry.UserID,
			Approved: cmd == CommandApproveRegistration,
			Reason:   reason,
		}}, nil

	case CommandTimeIn, CommandTimeOut:
		// Self-service, or staff acting on the participant's behalf.
		if actor.UserID != entry.UserID && !actor.Role.CanApprove() {
			return nil, ErrUnauthorized
		}
		if !entry.RegistrationApproved() {
			return nil, ErrRegistrationNotApproved
		}
		// Attendance notifications are batched elsewhere; no intents here.
		return nil, nil

	case CommandApproveAttendance, CommandDisapproveAttendance:
		if !actor.Role.CanApprove() {
			return nil, ErrUnauthorized
		}
		if !entry.RegistrationApproved() {
			return nil, ErrRegistrationNotApproved
		}
		if !entry.Ledger.HasClosedRecord() {
			return nil, ErrNoAttendanceRecorded
		}
		if entry.AttendanceStatus != AttendanceStatusAttended {
			return nil, ErrNotPending
		}
		if cmd == CommandDisapproveAttendance && reason == "" {
			return nil, ErrReasonRequired
		}
		return []NotificationIntent{{
			Kind:     IntentAttendanceDecision,
			EventID:  event.ID,
			UserID:   entry.UserID,
			Approved: cmd == CommandApproveAttendance,
			Reason:   reason,
		}}, nil
	}

	return nil, ErrUnauthorized
}
