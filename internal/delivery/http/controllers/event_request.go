package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"eventify/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Every field is required.
// Keys are matched exactly. Unknown fields, including any client supplied id, are ignored.
// Scalar values are coerced the way a schemaless client expects: numbers and booleans
// become strings and a single value stands in for a one-element list.
type CreateEventRequest struct {
	Title           looseString `json:"title" swaggertype:"string"`
	Date            looseString `json:"date" swaggertype:"string"`
	TimeToStart     looseString `json:"timeToStart" swaggertype:"string"`
	TimeToEnd       looseString `json:"timeToEnd" swaggertype:"string"`
	EventType       looseString `json:"eventType" swaggertype:"string"`
	Host            looseString `json:"host" swaggertype:"string"`
	Details         looseString `json:"details" swaggertype:"string"`
	EventTags       stringList  `json:"eventTags" swaggertype:"array,string"`
	LocationCity    looseString `json:"locationCity" swaggertype:"string"`
	LocationAddress looseString `json:"locationAddress" swaggertype:"string"`
	Thumbnail       looseString `json:"thumbnail" swaggertype:"string"`
	Speakers        stringList  `json:"speakers" swaggertype:"array,string"`
}

type requestValue interface {
	json.Unmarshaler
	present() bool
}

type requestField struct {
	name  string
	value requestValue
}

// fields lists the body fields in declaration order.
func (c *CreateEventRequest) fields() []requestField {
	return []requestField{
		{"title", &c.Title},
		{"date", &c.Date},
		{"timeToStart", &c.TimeToStart},
		{"timeToEnd", &c.TimeToEnd},
		{"eventType", &c.EventType},
		{"host", &c.Host},
		{"details", &c.Details},
		{"eventTags", &c.EventTags},
		{"locationCity", &c.LocationCity},
		{"locationAddress", &c.LocationAddress},
		{"thumbnail", &c.Thumbnail},
		{"speakers", &c.Speakers},
	}
}

// UnmarshalJSON reads only the exact field names; encoding/json would otherwise fold case.
func (c *CreateEventRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, f := range c.fields() {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := f.value.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Validate implements helpers.Validator. It returns the json names of missing fields in
// declaration order. Strings must be non-empty; lists must be present but may be empty.
func (c CreateEventRequest) Validate() []string {
	var missing []string
	for _, f := range c.fields() {
		if !f.value.present() {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (c CreateEventRequest) toEvent() *domain.Event {
	return &domain.Event{
		Title:           string(c.Title),
		Date:            string(c.Date),
		TimeToStart:     string(c.TimeToStart),
		TimeToEnd:       string(c.TimeToEnd),
		EventType:       string(c.EventType),
		Host:            string(c.Host),
		Details:         string(c.Details),
		EventTags:       c.EventTags,
		LocationCity:    string(c.LocationCity),
		LocationAddress: string(c.LocationAddress),
		Thumbnail:       string(c.Thumbnail),
		Speakers:        c.Speakers,
	}
}

// looseString accepts a JSON string, number or boolean. Falsy scalars (null, false, 0, "")
// decode to "" and so count as missing.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	text, truthy, err := scalarText(b)
	if err != nil {
		return err
	}
	if !truthy {
		text = ""
	}
	*s = looseString(text)
	return nil
}

func (s *looseString) present() bool { return *s != "" }

// stringList accepts an array of scalars or a single scalar, which becomes a one-element
// list. null and falsy scalars leave the list nil.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make(stringList, 0, len(items))
		for i, item := range items {
			text, _, err := scalarText(item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out = append(out, text)
		}
		*l = out
		return nil
	}
	text, truthy, err := scalarText(b)
	if err != nil {
		return err
	}
	if !truthy {
		*l = nil
		return nil
	}
	*l = stringList{text}
	return nil
}

func (l *stringList) present() bool { return *l != nil }

// scalarText returns the string form of a JSON scalar and whether it is truthy.
// Objects and arrays are rejected.
func scalarText(b []byte) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, err
	}
	switch v := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, v != "", nil
	case bool:
		return strconv.FormatBool(v), v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return "", false, fmt.Errorf("invalid number %s: %w", v, err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), f != 0, nil
	case []any:
		return "", false, errors.New("expected a string, number or boolean, got an array")
	default:
		return "", false, errors.New("expected a string, number or boolean, got an object")
	}
}
