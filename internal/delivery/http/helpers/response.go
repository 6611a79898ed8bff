package helpers

import (
	"encoding/json"
	"net/http"

	"eventify/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	// Fields lists the missing required fields on a failed create.
	Fields []string `json:"fields,omitempty"`
}

// EventMessageResponse is the body returned by create and delete.
// swagger:model EventMessageResponse
type EventMessageResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse. details is omitted from the body when empty.
func WriteJSONError(w http.ResponseWriter, statusCode int, message, details string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}
