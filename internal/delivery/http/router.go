package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventify/internal/delivery/http/controllers"
	"eventify/internal/delivery/http/helpers"
	"eventify/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes and wraps it with
// request id, request logging and CORS middleware.
func NewRouter(logger *slog.Logger, allowedOrigins []string, eventController *controllers.EventController) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/title/{eventTitle}", eventController.GetEventByTitle)
	mux.HandleFunc("GET /events/tags/{eventTag}", eventController.ListEventsByTag)
	mux.HandleFunc("DELETE /events/id/{eventId}", eventController.DeleteEvent)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux)))
}
