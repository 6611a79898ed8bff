package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventify/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	announcer      domain.EventAnnouncer
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService returns a domain.EventService over eventRepo. announcer may be nil.
// A zero timeout leaves store calls bounded only by the request context.
func NewEventService(eventRepo domain.EventRepository, announcer domain.EventAnnouncer, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		announcer:      announcer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.eventRepo.Create(storeCtx, event); err != nil {
		s.logger.ErrorContext(ctx, "error while creating event", "title", event.Title, "err", err)
		return fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "id", event.ID, "title", event.Title)

	if s.announcer != nil {
		if err := s.announcer.AnnounceEvent(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "event announcement failed", "id", event.ID, "err", err)
		}
	}
	return nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error while fetching events", "err", err)
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) FindByTitle(ctx context.Context, title string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "error while fetching event by title", "title", title, "err", err)
		return nil, fmt.Errorf("get event by title: %w", err)
	}
	return event, nil
}

func (s *eventService) FindByTag(ctx context.Context, tag string) ([]*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.eventRepo.ListByTag(ctx, tag)
	if err != nil {
		s.logger.ErrorContext(ctx, "error while fetching events by tag", "tag", tag, "err", err)
		return nil, fmt.Errorf("list events by tag: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.eventRepo.DeleteByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrInvalidID):
			s.logger.InfoContext(ctx, "rejected malformed event id", "id", id)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "error while deleting event", "id", id, "err", err)
		return nil, fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "id", event.ID)
	return event, nil
}
