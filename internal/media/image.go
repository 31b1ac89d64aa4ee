// Package media resolves the image references attached to events. The
// upstream data is inconsistent across record generations, so resolution
// follows a strict fallback chain rather than trusting any single shape.
package media

import (
	"regexp"
	"strings"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// Placeholder is shown whenever a usable image reference is missing.
const Placeholder = "/placeholder.jpg"

var (
	hexID   = regexp.MustCompile(`^[a-f0-9]{24}$`)
	idInURL = regexp.MustCompile(`/upload/image/([a-f0-9]{24})`)
)

// Resolve turns an image reference into a fetchable URL, in priority
// order: placeholder when absent; a string kept as-is when it is already
// a URL or an upload path; a constructed fetch-by-id URL when the string
// is a 24-character identifier or the reference carries one; placeholder
// for anything else. A plain length check stands in for id validation on
// the string form, matching what historical records were written against.
func Resolve(baseURL string, ref model.ImageRef) string {
	if ref.URL != "" {
		if strings.HasPrefix(ref.URL, "http") || strings.HasPrefix(ref.URL, "/upload") {
			return ref.URL
		}
		if len(ref.URL) == 24 {
			return IDURL(baseURL, ref.URL)
		}
		return Placeholder
	}
	if ref.ID != "" {
		return IDURL(baseURL, ref.ID)
	}
	return Placeholder
}

// IDURL builds the fetch-by-id URL for an image identifier.
func IDURL(baseURL, id string) string {
	return strings.TrimSuffix(baseURL, "/") + "/upload/image/" + id
}

// ExtractID pulls a 24-character image identifier out of a display URL.
// The admin form uses this before submission so the server only ever
// receives bare identifiers.
func ExtractID(s string) (string, bool) {
	if hexID.MatchString(s) {
		return s, true
	}
	if m := idInURL.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}
