package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eventify/internal/domain"
)

// CollectionName is the collection holding event documents.
const CollectionName = "meetupevents"

// eventDocument is the stored shape of domain.Event.
type eventDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Date            string             `bson:"date"`
	TimeToStart     string             `bson:"timeToStart"`
	TimeToEnd       string             `bson:"timeToEnd"`
	EventType       string             `bson:"eventType"`
	Host            string             `bson:"host"`
	Details         string             `bson:"details"`
	EventTags       []string           `bson:"eventTags"`
	LocationCity    string             `bson:"locationCity"`
	LocationAddress string             `bson:"locationAddress"`
	Thumbnail       string             `bson:"thumbnail"`
	Speakers        []string           `bson:"speakers"`
}

func newEventDocument(e *domain.Event) eventDocument {
	return eventDocument{
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

func (d eventDocument) toDomain() *domain.Event {
	return &domain.Event{
		ID:              d.ID.Hex(),
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

type eventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository returns a domain.EventRepository backed by the events collection of db.
func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{coll: db.Collection(CollectionName)}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	res, err := r.coll.InsertOne(ctx, newEventDocument(e))
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	e.ID = oid.Hex()
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.find(ctx, bson.D{})
}

func (r *eventRepository) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	var doc eventDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "title", Value: title}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByTag matches documents whose eventTags array contains tag.
func (r *eventRepository) ListByTag(ctx context.Context, tag string) ([]*domain.Event, error) {
	return r.find(ctx, bson.D{{Key: "eventTags", Value: tag}})
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	var doc eventDocument
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) find(ctx context.Context, filter bson.D) ([]*domain.Event, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}
