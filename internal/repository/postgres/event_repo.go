package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventify/internal/domain"
)

// pgInvalidTextRepresentation is raised when a value cannot be cast, e.g. a malformed uuid.
const pgInvalidTextRepresentation = "22P02"

// document is the JSONB body stored per row; the id lives in its own column.
type document struct {
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

func newDocument(e *domain.Event) document {
	return document{
		Title:           e.Title,
		Date:            e.Date,
		TimeToStart:     e.TimeToStart,
		TimeToEnd:       e.TimeToEnd,
		EventType:       e.EventType,
		Host:            e.Host,
		Details:         e.Details,
		EventTags:       e.EventTags,
		LocationCity:    e.LocationCity,
		LocationAddress: e.LocationAddress,
		Thumbnail:       e.Thumbnail,
		Speakers:        e.Speakers,
	}
}

func (d document) toDomain(id string) *domain.Event {
	return &domain.Event{
		ID:              id,
		Title:           d.Title,
		Date:            d.Date,
		TimeToStart:     d.TimeToStart,
		TimeToEnd:       d.TimeToEnd,
		EventType:       d.EventType,
		Host:            d.Host,
		Details:         d.Details,
		EventTags:       d.EventTags,
		LocationCity:    d.LocationCity,
		LocationAddress: d.LocationAddress,
		Thumbnail:       d.Thumbnail,
		Speakers:        d.Speakers,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}
	return d.toDomain(id), nil
}

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository storing each event as a JSONB document.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	body, err := json.Marshal(newDocument(e))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	id := uuid.NewString()
	query := `INSERT INTO events (id, doc) VALUES ($1, $2)`
	if _, err := r.DB.ExecContext(ctx, query, id, body); err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT id, doc FROM events ORDER BY created_at, id`)
}

func (r *eventRepository) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	query := `
		SELECT id, doc
		FROM events
		WHERE doc->>'title' = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByTag(ctx context.Context, tag string) ([]*domain.Event, error) {
	query := `
		SELECT id, doc
		FROM events
		WHERE doc->'eventTags' @> jsonb_build_array($1::text)
		ORDER BY created_at, id
	`
	return r.list(ctx, query, tag)
}

// DeleteByID lets Postgres parse the id; a cast failure is reported as domain.ErrInvalidID.
func (r *eventRepository) DeleteByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `DELETE FROM events WHERE id = $1 RETURNING id, doc`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pgInvalidTextRepresentation {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
