// Package memory is a process-local event store for development and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"eventify/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	events []*domain.Event
}

// NewEventRepository returns an empty in-memory domain.EventRepository. Ids are UUIDs.
func NewEventRepository() domain.EventRepository {
	return &eventRepository{}
}

// clone keeps callers from mutating stored events through shared slices.
func clone(e *domain.Event) *domain.Event {
	c := *e
	c.EventTags = slices.Clone(e.EventTags)
	c.Speakers = slices.Clone(e.Speakers)
	return &c
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	r.events = append(r.events, clone(e))
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.filter(ctx, func(*domain.Event) bool { return true })
}

func (r *eventRepository) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.Title == title {
			return clone(e), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) ListByTag(ctx context.Context, tag string) ([]*domain.Event, error) {
	return r.filter(ctx, func(e *domain.Event) bool { return slices.Contains(e.EventTags, tag) })
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e.ID == id {
			r.events = slices.Delete(r.events, i, i+1)
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) filter(ctx context.Context, keep func(*domain.Event) bool) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Event, 0)
	for _, e := range r.events {
		if keep(e) {
			out = append(out, clone(e))
		}
	}
	return out, nil
}
