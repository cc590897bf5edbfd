package service

import (
	"context"
	"fmt"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/logger"
	"servicehours-backend/internal/repository"
)

// notificationDispatcher turns notification intents into emails and stored
// in-app notifications. Failures are logged and swallowed: the state change
// they describe is already committed.
type notificationDispatcher struct {
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewDispatcher(userRepo repository.UserRepository, noteRepo repository.NotificationRepository, emailSvc EmailService) Dispatcher {
	return &notificationDispatcher{
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func (d *notificationDispatcher) Dispatch(ctx context.Context, event *domain.Event, intents []domain.NotificationIntent) {
	log := logger.WithService("dispatcher")
	for _, intent := range intents {
		user, err := d.userRepo.GetByID(ctx, intent.UserID)
		if err != nil {
			log.Error("failed to load notification recipient", "user_id", intent.UserID, "error", err)
			continue
		}

		var title, message string
		switch intent.Kind {
		case domain.IntentRegistrationReceived:
			title = "Registration received"
			message = fmt.Sprintf("Your registration for %s was received and is awaiting approval", event.Title)
			_ = d.emailSvc.SendRegistrationReceived(ctx, user.Email, user.Name, event.Title)
		case domain.IntentRegistrationDecision:
			if intent.Approved {
				title = "Registration approved"
				message = fmt.Sprintf("Your registration for %s was approved", event.Title)
			} else {
				title = "Registration disapproved"
				message = fmt.Sprintf("Your registration for %s was disapproved: %s", event.Title, intent.Reason)
			}
			_ = d.emailSvc.SendRegistrationDecision(ctx, user.Email, user.Name, event.Title, intent.Approved, intent.Reason)
		case domain.IntentAttendanceDecision:
			if intent.Approved {
				title = "Hours approved"
				message = fmt.Sprintf("Your service hours for %s were approved", event.Title)
			} else {
				title = "Hours disapproved"
				message = fmt.Sprintf("Your service hours for %s were disapproved: %s", event.Title, intent.Reason)
			}
			_ = d.emailSvc.SendAttendanceDecision(ctx, user.Email, user.Name, event.Title, intent.Approved, intent.Reason)
		default:
			log.Warn("unknown notification intent", "kind", intent.Kind)
			continue
		}

		note := &domain.Notification{
			UserID:  intent.UserID,
			EventID: event.ID,
			Title:   title,
			Message: message,
			Attributes: map[string]string{
				"kind":     string(intent.Kind),
				"event_id": fmt.Sprintf("%d", event.ID),
			},
		}
		if err := d.noteRepo.Create(ctx, note); err != nil {
			log.Error("failed to store notification", "user_id", intent.UserID, "error", err)
		}
	}
}
