package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventify/internal/delivery/http/helpers"
	"eventify/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *EventController) logFailure(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a meetup event. All twelve fields are required; the id is assigned by the store.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.EventMessageResponse "event contains the stored event"
// @Failure 400 {object} helpers.ErrorResponse "fields lists the missing fields"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent()
	if err := c.Service.Create(r.Context(), event); err != nil {
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to create event", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, helpers.EventMessageResponse{
		Message: "Event added successfully",
		Event:   event,
	})
}

// ListEvents godoc
// @Summary List all events
// @Description Returns every event in store order. Not paginated.
// @Tags events
// @Produce json
// @Success 200 {array} domain.Event
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// GetEventByTitle godoc
// @Summary Get an event by title
// @Description Returns the first event whose title matches exactly (case-sensitive).
// @Tags events
// @Produce json
// @Param eventTitle path string true "Event title"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/title/{eventTitle} [get]
func (c *EventController) GetEventByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("eventTitle")
	if title == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Missing event title", "")
		return
	}
	event, err := c.Service.FindByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", "")
			return
		}
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch event", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// ListEventsByTag godoc
// @Summary List events by tag
// @Description Returns every event whose eventTags contains the tag; an empty array when none match.
// @Tags events
// @Produce json
// @Param eventTag path string true "Event tag"
// @Success 200 {array} domain.Event
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/tags/{eventTag} [get]
func (c *EventController) ListEventsByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("eventTag")
	if tag == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Missing event tag", "")
		return
	}
	events, err := c.Service.FindByTag(r.Context(), tag)
	if err != nil {
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch events by tag", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// DeleteEvent godoc
// @Summary Delete an event by id
// @Description Removes the event and returns it. A malformed id is rejected with 400.
// @Tags events
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} helpers.EventMessageResponse "event contains the deleted event"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/id/{eventId} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventId")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Missing event id", "")
		return
	}
	event, err := c.Service.DeleteByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", "")
		case errors.Is(err, domain.ErrInvalidID):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid event id", "")
		default:
			c.logFailure(r, err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to delete event", "")
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.EventMessageResponse{
		Message: "Event data deleted successfully",
		Event:   event,
	})
}
