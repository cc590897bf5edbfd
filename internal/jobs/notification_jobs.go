package jobs

import (
	"context"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/logger"
)

// SendEventReminders emails approved participants of events starting within
// the configured reminder window.
func (jr *JobRunner) SendEventReminders() {
	jr.runWithRecovery("SendEventReminders", func() {
		ctx := context.Background()
		window := time.Duration(jr.config.Scheduler.ReminderWindowHours) * time.Hour

		now := time.Now()
		events, err := jr.store.EventRepository.ListStartingBetween(ctx, now, now.Add(window))
		if err != nil {
			logger.Error("Failed to list upcoming events", "error", err)
			return
		}

		count := 0
		for i := range events {
			ev := &events[i]
			for j := range ev.Entries {
				entry := &ev.Entries[j]
				if !entry.ApprovedForEvent() {
					continue
				}

				user, err := jr.store.UserRepository.GetByID(ctx, entry.UserID)
				if err != nil {
					logger.Error("Failed to load participant", "user_id", entry.UserID, "error", err)
					continue
				}

				err = jr.services.Email.SendEventReminder(ctx, user.Email, user.Name,
					ev.Title, ev.StartsOn.Format(time.RFC1123))
				if err != nil {
					logger.Error("Failed to send event reminder",
						"event_id", ev.ID,
						"user_id", entry.UserID,
						"error", err)
					continue
				}
				count++
			}
		}
		logger.Info("Event reminders sent", "count", count)
	})
}

// SendPendingApprovalDigests emails staff a count of registrations and
// attendance records awaiting review.
func (jr *JobRunner) SendPendingApprovalDigests() {
	jr.runWithRecovery("SendPendingApprovalDigests", func() {
		ctx := context.Background()

		query := `
			SELECT COUNT(*)
			FROM registration_entries re
			JOIN events e ON e.id = re.event_id
			WHERE e.status = 'ACTIVE'
			  AND (re.registration_status = 'PENDING' OR re.attendance_status = 'ATTENDED')
		`
		var pending int32
		if err := jr.db.QueryRowContext(ctx, query).Scan(&pending); err != nil {
			logger.Error("Failed to count pending approvals", "error", err)
			return
		}
		if pending == 0 {
			logger.Info("No pending approvals, skipping digest")
			return
		}

		staff, err := jr.store.UserRepository.ListByRole(ctx, domain.RoleStaff)
		if err != nil {
			logger.Error("Failed to list staff", "error", err)
			return
		}
		admins, err := jr.store.UserRepository.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}

		count := 0
		for _, user := range append(staff, admins...) {
			if err := jr.services.Email.SendPendingApprovalsDigest(ctx, user.Email, user.Name, pending); err != nil {
				logger.Error("Failed to send approval digest", "user_id", user.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Approval digests sent", "recipients", count, "pending", pending)
	})
}
