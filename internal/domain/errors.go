package domain

import "errors"

// Business-rule errors returned by the gate, the aggregate, and the entry
// effect methods. The API layer maps each to a deterministic status code.
var (
	ErrEntryNotFound         = errors.New("registration entry not found")
	ErrEventNotActive        = errors.New("event is not active")
	ErrEventNotVisible       = errors.New("event is not visible")
	ErrDuplicateRegistration = errors.New("user is already registered for this event")
	ErrCapacityExceeded      = errors.New("event capacity exceeded")
	ErrTokenInvalid          = errors.New("invalid public registration token")
	ErrUnauthorized          = errors.New("actor is not authorized for this command")

	ErrNotPending              = errors.New("decision already made")
	ErrRegistrationNotApproved = errors.New("registration is not approved")
	ErrNoAttendanceRecorded    = errors.New("no completed time record")
	ErrReasonRequired          = errors.New("disapproval reason is required")

	ErrAlreadyOpen  = errors.New("a time record is already open")
	ErrNoOpenRecord = errors.New("no open time record")
	ErrInvalidOrder = errors.New("time-out precedes time-in")
)
