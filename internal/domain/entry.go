package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending     RegistrationStatus = "PENDING"
	RegistrationStatusApproved    RegistrationStatus = "APPROVED"
	RegistrationStatusDisapproved RegistrationStatus = "DISAPPROVED"
)

type AttendanceStatus string

const (
	AttendanceStatusPending     AttendanceStatus = "PENDING"
	AttendanceStatusAttended    AttendanceStatus = "ATTENDED"
	AttendanceStatusApproved    AttendanceStatus = "APPROVED"
	AttendanceStatusDisapproved AttendanceStatus = "DISAPPROVED"
)

// RegistrationEntry is one user's membership record within one event.
type RegistrationEntry struct {
	ID                 int32              `json:"id"`
	EventID            int32              `json:"event_id"`
	UserID             int32              `json:"user_id"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	AttendanceStatus   AttendanceStatus   `json:"attendance_status"`
	DisapprovalReason  string             `json:"disapproval_reason,omitempty"`
	JoinedOn           time.Time          `json:"joined_at"`
	LastModifiedOn     time.Time          `json:"last_modified_at"`
	LastModifiedBy     int32              `json:"last_modified_by"`
	Ledger             TimeLedger         `json:"time_records"`
}

// NewRegistrationEntry initializes a pending entry for a user joining an event.
func NewRegistrationEntry(eventID, userID int32, at time.Time) *RegistrationEntry {
	return &RegistrationEntry{
		EventID:            eventID,
		UserID:             userID,
		RegistrationStatus: RegistrationStatusPending,
		AttendanceStatus:   AttendanceStatusPending,
		JoinedOn:           at,
		LastModifiedOn:     at,
		LastModifiedBy:     userID,
	}
}

// RegistrationApproved reports whether the registration itself has been
// approved by staff.
func (e *RegistrationEntry) RegistrationApproved() bool {
	return e.RegistrationStatus == RegistrationStatusApproved
}

// ApprovedForEvent is the effective participation state: the single source of
// truth for whether the user may access event-gated features. All consumers
// (API, reports, notifications) read this; none recompute it differently.
func (e *RegistrationEntry) ApprovedForEvent() bool {
	return e.RegistrationApproved() ||
		e.AttendanceStatus == AttendanceStatusApproved ||
		e.AttendanceStatus == AttendanceStatusAttended
}

func (e *RegistrationEntry) touch(by int32, at time.Time) {
	e.LastModifiedBy = by
	e.LastModifiedOn = at
}

// ApproveRegistration marks a pending registration as approved.
func (e *RegistrationEntry) ApproveRegistration(by int32, at time.Time) error {
	if e.RegistrationStatus != RegistrationStatusPending {
		return ErrNotPending
	}
	e.RegistrationStatus = RegistrationStatusApproved
	e.touch(by, at)
	return nil
}

// DisapproveRegistration marks a pending registration as disapproved with a
// mandatory reason.
func (e *RegistrationEntry) DisapproveRegistration(by int32, reason string, at time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if e.RegistrationStatus != RegistrationStatusPending {
		return ErrNotPending
	}
	e.RegistrationStatus = RegistrationStatusDisapproved
	e.DisapprovalReason = reason
	e.touch(by, at)
	return nil
}

// ApproveAttendance approves the participant's recorded time. Requires an
// approved registration and at least one completed time record.
func (e *RegistrationEntry) ApproveAttendance(by int32, at time.Time) error {
	if !e.RegistrationApproved() {
		return ErrRegistrationNotApproved
	}
	if !e.Ledger.HasClosedRecord() {
		return ErrNoAttendanceRecorded
	}
	if e.AttendanceStatus != AttendanceStatusAttended {
		return ErrNotPending
	}
	e.AttendanceStatus = AttendanceStatusApproved
	e.touch(by, at)
	return nil
}

// DisapproveAttendance rejects the participant's recorded time with a
// mandatory reason.
func (e *RegistrationEntry) DisapproveAttendance(by int32, reason string, at time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if !e.RegistrationApproved() {
		return ErrRegistrationNotApproved
	}
	if !e.Ledger.HasClosedRecord() {
		return ErrNoAttendanceRecorded
	}
	if e.AttendanceStatus != AttendanceStatusAttended {
		return ErrNotPending
	}
	e.AttendanceStatus = AttendanceStatusDisapproved
	e.DisapprovalReason = reason
	e.touch(by, at)
	return nil
}

// RecordTimeIn opens a time record. The first successful time-in flips a
// pending attendance to attended.
func (e *RegistrationEntry) RecordTimeIn(by int32, at time.Time) error {
	if !e.RegistrationApproved() {
		return ErrRegistrationNotApproved
	}
	if err := e.Ledger.OpenRecord(at); err != nil {
		return err
	}
	if e.AttendanceStatus == AttendanceStatusPending {
		e.AttendanceStatus = AttendanceStatusAttended
	}
	e.touch(by, at)
	return nil
}

// RecordTimeOut closes the open time record.
func (e *RegistrationEntry) RecordTimeOut(by int32, at time.Time) error {
	if !e.RegistrationApproved() {
		return ErrRegistrationNotApproved
	}
	if err := e.Ledger.CloseRecord(at); err != nil {
		return err
	}
	e.touch(by, at)
	return nil
}
