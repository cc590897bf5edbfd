package domain

import "time"

type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusDisabled  EventStatus = "DISABLED"
)

// Event is the aggregate root for one community-service event. It owns the
// registration entries and is the unit of persistence and concurrency: all
// mutations go through CreateEntry/ApplyDecision under a per-event lock, and
// Version backs the optimistic save.
type Event struct {
	ID               int32               `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	StartsOn         time.Time           `json:"starts_on"`
	EndsOn           time.Time           `json:"ends_on"`
	Capacity         *int32              `json:"capacity,omitempty"` // nil means unlimited
	Visible          bool                `json:"visible"`
	RequiresApproval bool                `json:"requires_approval"`
	PublicToken      *string             `json:"public_token,omitempty"`
	Status           EventStatus         `json:"status"`
	CreatedBy        int32               `json:"created_by"`
	CreatedOn        time.Time           `json:"created_on"`
	Version          int32               `json:"version"`
	Entries          []RegistrationEntry `json:"entries,omitempty"`
}

// Active reports whether the event still accepts commands.
func (ev *Event) Active() bool {
	return ev.Status == EventStatusActive
}

// Entry returns the registration entry for the given user, or nil.
// Invariant: at most one entry per user per event.
func (ev *Event) Entry(userID int32) *RegistrationEntry {
	for i := range ev.Entries {
		if ev.Entries[i].UserID == userID {
			return &ev.Entries[i]
		}
	}
	return nil
}

// AtCapacity reports whether the event has no seats left. Disapproved
// registrations release their seat; pending ones hold it until decided.
func (ev *Event) AtCapacity() bool {
	if ev.Capacity == nil {
		return false
	}
	var taken int32
	for i := range ev.Entries {
		if ev.Entries[i].RegistrationStatus != RegistrationStatusDisapproved {
			taken++
		}
	}
	return taken >= *ev.Capacity
}

// TokenMatches validates a public registration token against the event's
// stored token. Events without a token never match.
func (ev *Event) TokenMatches(token string) bool {
	return ev.PublicToken != nil && token != "" && *ev.PublicToken == token
}

// CreateEntry validates a join through the gate and appends the new entry.
// Returns the created entry and the notification intents for the dispatcher.
func (ev *Event) CreateEntry(userID int32, cred Credential, at time.Time) (*RegistrationEntry, []NotificationIntent, error) {
	intents, err := DecideJoin(userID, cred, ev)
	if err != nil {
		return nil, nil, err
	}
	ev.Entries = append(ev.Entries, *NewRegistrationEntry(ev.ID, userID, at))
	return &ev.Entries[len(ev.Entries)-1], intents, nil
}

// ApplyDecision is the single entry point for approve/disapprove/time
// commands. It locates the entry, consults the gate, applies the entry-level
// mutation, and returns the notification intents for the dispatcher.
func (ev *Event) ApplyDecision(userID int32, cmd Command, actor Actor, reason string, at time.Time) ([]NotificationIntent, error) {
	entry := ev.Entry(userID)
	intents, err := Decide(cmd, actor, entry, ev, reason)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandApproveRegistration:
		err = entry.ApproveRegistration(actor.UserID, at)
	case CommandDisapproveRegistration:
		err = entry.DisapproveRegistration(actor.UserID, reason, at)
	case CommandApproveAttendance:
		err = entry.ApproveAttendance(actor.UserID, at)
	case CommandDisapproveAttendance:
		err = entry.DisapproveAttendance(actor.UserID, reason, at)
	case CommandTimeIn:
		err = entry.RecordTimeIn(actor.UserID, at)
	case CommandTimeOut:
		err = entry.RecordTimeOut(actor.UserID, at)
	default:
		err = ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return intents, nil
}
