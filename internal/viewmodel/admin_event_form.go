package viewmodel

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/media"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// EventFormFields are the editable form values, held in their display
// form: tags as a comma-separated string, the image as a preview URL,
// price as entered text.
type EventFormFields struct {
	Name        string
	Description string
	Category    string
	Date        string
	Venue       string
	Price       string
	Tags        string
	Image       string
}

// EventForm drives the shared admin create/edit event form. On edit it
// prefills from a by-id fetch; on submit the display values are converted
// back to the wire shapes (tags split, image preview URL stripped to a
// bare identifier).
type EventForm struct {
	client  *api.Client
	notify  Notifier
	nav     Navigator
	logger  *slog.Logger
	eventID string

	mu     sync.Mutex
	fields EventFormFields
	phase  Phase
}

// NewEventForm creates the form view-model. An empty eventID means
// "create"; otherwise the form edits that event.
func NewEventForm(client *api.Client, notify Notifier, nav Navigator, eventID string, logger *slog.Logger) *EventForm {
	return &EventForm{
		client:  client,
		notify:  notify,
		nav:     nav,
		logger:  logger,
		eventID: eventID,
		phase:   PhaseLoaded,
	}
}

// IsEdit reports whether the form edits an existing event.
func (f *EventForm) IsEdit() bool {
	return f.eventID != ""
}

// Phase returns the form's load state.
func (f *EventForm) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Fields returns the current form values.
func (f *EventForm) Fields() EventFormFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces the form values wholesale; the shell edits fields as
// a unit.
func (f *EventForm) SetFields(fields EventFormFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// LoadForEdit prefills the form from the event being edited. The date is
// trimmed to minute precision, tags become a comma-separated string, and
// an identifier-bearing image reference becomes its display URL.
func (f *EventForm) LoadForEdit(ctx context.Context) {
	if !f.IsEdit() {
		return
	}

	f.mu.Lock()
	f.phase = PhaseLoading
	f.mu.Unlock()

	ev, err := f.client.GetEvent(ctx, f.eventID)
	if err != nil {
		f.mu.Lock()
		f.phase = PhaseFailed
		f.mu.Unlock()
		f.logger.Error("loading event for edit failed", "event", f.eventID, "error", err)
		f.notify.Error("Failed to load event")
		return
	}

	date := ev.Date
	if len(date) > 16 {
		date = date[:16]
	}
	imageURL := ""
	if ev.Image.ID != "" {
		imageURL = media.IDURL(f.client.BaseURL(), ev.Image.ID)
	}

	f.mu.Lock()
	f.fields = EventFormFields{
		Name:        ev.Name,
		Description: ev.Description,
		Category:    ev.Category,
		Date:        date,
		Venue:       ev.Venue,
		Price:       strconv.FormatFloat(ev.Price, 'f', -1, 64),
		Tags:        model.JoinTags(ev.Tags),
		Image:       imageURL,
	}
	f.phase = PhaseLoaded
	f.mu.Unlock()
}

// UploadImage sends the image as a separate multipart request. The
// returned identifier is immediately turned into a preview URL; Submit
// strips it back to the bare identifier.
func (f *EventForm) UploadImage(ctx context.Context, filename string, r io.Reader) {
	id, err := f.client.UploadImage(ctx, filename, r)
	if err != nil {
		f.logger.Error("image upload failed", "error", err)
		f.notify.Error("Image upload failed")
		return
	}

	f.mu.Lock()
	f.fields.Image = media.IDURL(f.client.BaseURL(), id)
	f.mu.Unlock()
	f.notify.Success("Image uploaded")
}

// Submit converts the display values to the wire shapes and creates or
// updates the event. The form never submits a display URL: anything
// carrying a 24-character identifier is reduced to that identifier.
func (f *EventForm) Submit(ctx context.Context) {
	f.mu.Lock()
	fields := f.fields
	f.mu.Unlock()

	price, err := strconv.ParseFloat(fields.Price, 64)
	if err != nil && fields.Price != "" {
		f.notify.Error("Price must be a number")
		return
	}

	image := fields.Image
	if id, ok := media.ExtractID(image); ok {
		image = id
	}

	req := model.EventRequest{
		Name:        fields.Name,
		Description: fields.Description,
		Category:    fields.Category,
		Date:        fields.Date,
		Venue:       fields.Venue,
		Price:       price,
		Tags:        model.ParseTags(fields.Tags),
		Image:       image,
	}

	if f.IsEdit() {
		_, err = f.client.UpdateEvent(ctx, f.eventID, req)
	} else {
		_, err = f.client.CreateEvent(ctx, req)
	}
	if err != nil {
		f.logger.Error("saving event failed", "event", f.eventID, "error", err)
		f.notify.Error(api.Message(err, "Save failed"))
		return
	}

	if f.IsEdit() {
		f.notify.Success("Event updated")
	} else {
		f.notify.Success("Event created")
	}
	f.nav.To(RouteAdminEvents)
}
