package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventify/internal/domain"
)

const announcementTemplate = "event_announcement"

type emailService struct {
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	recipients []string
	logger     *slog.Logger
}

// NewEmailService returns an EventAnnouncer that mails every recipient through mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipients []string, logger *slog.Logger) domain.EventAnnouncer {
	return &emailService{mailer: mailer, renderer: renderer, recipients: recipients, logger: logger}
}

// AnnounceEvent renders the announcement once per recipient and keeps going after a failed send.
func (s *emailService) AnnounceEvent(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return fmt.Errorf("announcement event is nil")
	}
	var errs []error
	for _, to := range s.recipients {
		data := &domain.EventAnnouncementEmailData{Email: to, Event: event}
		subject, htmlBody, textBody, err := s.renderer.Render(announcementTemplate, data)
		if err != nil {
			return fmt.Errorf("failed to render %s template: %w", announcementTemplate, err)
		}
		if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", to, err))
			continue
		}
		s.logger.InfoContext(ctx, "event announcement sent", "to", to, "id", event.ID)
	}
	return errors.Join(errs...)
}
