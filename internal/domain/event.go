package domain

import (
	"context"
	"errors"
)

// Sentinel errors shared by the repositories, services and HTTP layer.
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidID  = errors.New("invalid id")
	ErrConnection = errors.New("database connection failed")
)

// Event represents a meetup listing.
// swagger:model Event
type Event struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	TimeToStart     string   `json:"timeToStart"`
	TimeToEnd       string   `json:"timeToEnd"`
	EventType       string   `json:"eventType"`
	Host            string   `json:"host"`
	Details         string   `json:"details"`
	EventTags       []string `json:"eventTags"`
	LocationCity    string   `json:"locationCity"`
	LocationAddress string   `json:"locationAddress"`
	Thumbnail       string   `json:"thumbnail"`
	Speakers        []string `json:"speakers"`
}

// EventRepository defines the interface for event storage.
// Lookups that match nothing return ErrNotFound (single result) or an empty slice.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	GetByTitle(ctx context.Context, title string) (*Event, error)
	ListByTag(ctx context.Context, tag string) ([]*Event, error)
	// DeleteByID removes the event and returns it as stored. ErrInvalidID is returned
	// when id is not in the backend's identifier format.
	DeleteByID(ctx context.Context, id string) (*Event, error)
}

// EventService defines the business logic for meetup events.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	ListAll(ctx context.Context) ([]*Event, error)
	FindByTitle(ctx context.Context, title string) (*Event, error)
	FindByTag(ctx context.Context, tag string) ([]*Event, error)
	DeleteByID(ctx context.Context, id string) (*Event, error)
}
