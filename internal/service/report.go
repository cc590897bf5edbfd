package service

import (
	"context"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/repository"
)

type reportService struct {
	eventRepo repository.EventRepository
}

func NewReportService(eventRepo repository.EventRepository) ReportService {
	return &reportService{eventRepo: eventRepo}
}

// GetUserHours returns per-event hour totals for the user plus the grand
// total of credited hours. Only hours whose attendance was approved by staff
// count toward the total.
func (s *reportService) GetUserHours(ctx context.Context, userID int32) ([]UserHours, float64, error) {
	events, err := s.eventRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var rows []UserHours
	var total float64
	for i := range events {
		entry := events[i].Entry(userID)
		if entry == nil {
			continue
		}
		credited := entry.AttendanceStatus == domain.AttendanceStatusApproved
		hours := entry.Ledger.TotalHours()
		rows = append(rows, UserHours{
			EventID:    events[i].ID,
			EventTitle: events[i].Title,
			Hours:      hours,
			Credited:   credited,
		})
		if credited {
			total += hours
		}
	}
	return rows, total, nil
}

// GetEventHours returns recorded hours per participant for one event.
func (s *reportService) GetEventHours(ctx context.Context, actor domain.Actor, eventID int32) (map[int32]float64, error) {
	if !actor.Role.CanApprove() {
		return nil, domain.ErrUnauthorized
	}
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	hours := make(map[int32]float64, len(ev.Entries))
	for i := range ev.Entries {
		hours[ev.Entries[i].UserID] = ev.Entries[i].Ledger.TotalHours()
	}
	return hours, nil
}
