package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Event is a read-only copy of a server-side event.
type Event struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Venue       string   `json:"venue"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	Image       ImageRef `json:"image"`
}

// When parses the event date, accepting both the full RFC 3339 form the
// API returns and the minute-precision form the admin form submits.
func (e Event) When() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", e.Date)
}

// EventPage is one page of the catalog with its pagination metadata.
type EventPage struct {
	Events []Event `json:"events"`
	Page   int     `json:"page"`
	Pages  int     `json:"pages"`
}

// EventRequest is the payload for creating or updating an event. Image
// carries a bare image identifier, never a display URL.
type EventRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Venue       string   `json:"venue"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
}

// ImageRef is an event's image reference as stored server-side. Historical
// records are inconsistent: the field may be missing, a bare string (URL,
// upload path, or 24-character identifier), or an object carrying an
// identifier. Both shapes are preserved so display code can resolve them.
type ImageRef struct {
	ID  string
	URL string
}

// IsZero reports whether the reference carries nothing at all.
func (r ImageRef) IsZero() bool {
	return r.ID == "" && r.URL == ""
}

// UnmarshalJSON accepts null, a bare string, or an object with an "_id"
// field. Any other shape decodes to the zero reference.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	*r = ImageRef{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.URL = s
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID = obj.ID
		return nil
	}

	// Malformed historical data; treat as absent.
	return nil
}

// MarshalJSON writes the object form when an identifier is known, the
// verbatim string otherwise, and null when empty.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.ID != "" {
		return json.Marshal(struct {
			ID string `json:"_id"`
		}{ID: r.ID})
	}
	if r.URL != "" {
		return json.Marshal(r.URL)
	}
	return []byte("null"), nil
}

// ParseTags splits a comma-separated tag string into an ordered list,
// trimming whitespace and dropping empty entries.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags renders a tag list back into its comma-separated display form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
