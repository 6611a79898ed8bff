package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventAnnouncementEmailData holds data for the new event announcement email.
type EventAnnouncementEmailData struct {
	Email string
	Event *Event
}

// EventAnnouncer notifies subscribers that an event was published.
type EventAnnouncer interface {
	AnnounceEvent(ctx context.Context, event *Event) error
}
