package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps request bodies read by DecodeAndValidate.
const MaxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON value")

// Validator is implemented by request DTOs that support validation.
// Validate returns the names of the offending fields; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest implements Validator,
// runs Validate(). An empty body decodes as an empty object so that it is reported field by
// field. Anything after the first JSON value is rejected. On failure it writes a JSON error
// (413 past MaxBodyBytes, 400 otherwise) and returns false; callers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := decodeSingle(dec, dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large",
				fmt.Sprintf("limit is %d bytes", maxErr.Limit))
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if fields := v.Validate(); len(fields) > 0 {
			WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  "Missing required fields: " + strings.Join(fields, ", "),
				Fields: fields,
			})
			return false
		}
	}
	return true
}

// decodeSingle decodes exactly one JSON value from dec. An empty body is not an error.
func decodeSingle(dec *json.Decoder, dest any) error {
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	switch err := dec.Decode(&struct{}{}); {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	default:
		return err
	}
}
