package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRegistrationReceived(ctx context.Context, email, name, eventTitle string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour registration for %s was received and is awaiting staff approval. You will be notified once a decision is made.\n\nCommunity Service Office", name, eventTitle)
	return s.send(email, name, fmt.Sprintf("Registration received: %s", eventTitle), body)
}

func (s *emailService) SendRegistrationDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error {
	if approved {
		body := fmt.Sprintf("Hello %s,\n\nYour registration for %s has been approved. You may now record your service time at the event.\n\nCommunity Service Office", name, eventTitle)
		return s.send(email, name, fmt.Sprintf("Registration approved: %s", eventTitle), body)
	}
	body := fmt.Sprintf("Hello %s,\n\nYour registration for %s has been disapproved.\n\nReason: %s\n\nCommunity Service Office", name, eventTitle, reason)
	return s.send(email, name, fmt.Sprintf("Registration disapproved: %s", eventTitle), body)
}

func (s *emailService) SendAttendanceDecision(ctx context.Context, email, name, eventTitle string, approved bool, reason string) error {
	if approved {
		body := fmt.Sprintf("Hello %s,\n\nYour service hours for %s have been approved and credited to your record.\n\nCommunity Service Office", name, eventTitle)
		return s.send(email, name, fmt.Sprintf("Hours approved: %s", eventTitle), body)
	}
	body := fmt.Sprintf("Hello %s,\n\nYour service hours for %s have been disapproved.\n\nReason: %s\n\nCommunity Service Office", name, eventTitle, reason)
	return s.send(email, name, fmt.Sprintf("Hours disapproved: %s", eventTitle), body)
}

func (s *emailService) SendEventReminder(ctx context.Context, email, name, eventTitle, startsOn string) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that %s starts on %s. Remember to time in when you arrive.\n\nCommunity Service Office", name, eventTitle, startsOn)
	return s.send(email, name, fmt.Sprintf("Reminder: %s", eventTitle), body)
}

func (s *emailService) SendPendingApprovalsDigest(ctx context.Context, email, name string, pendingCount int32) error {
	body := fmt.Sprintf("Hello %s,\n\nThere are %d registrations or attendance records awaiting your review.\n\nCommunity Service Office", name, pendingCount)
	return s.send(email, name, "Pending approvals awaiting review", body)
}
