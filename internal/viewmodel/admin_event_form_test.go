package viewmodel

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

func TestLoadForEditPrefillsDisplayForms(t *testing.T) {
	backend := &adminBackend{events: []model.Event{{
		ID:          "e1",
		Name:        "Jazz Night",
		Description: "An evening of live jazz",
		Category:    "Music",
		Date:        "2026-09-01T19:30:00.000Z",
		Venue:       "Blue Hall",
		Price:       25.5,
		Tags:        []string{"music", "live"},
		Image:       model.ImageRef{ID: "64a1b2c3d4e5f6a7b8c9d0e1"},
	}}}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleAdmin)
	vm := NewEventForm(client, &fakeNotifier{}, &fakeNav{}, "e1", testLogger())

	vm.LoadForEdit(context.Background())

	fields := vm.Fields()
	if fields.Date != "2026-09-01T19:30" {
		t.Errorf("Date = %q, want minute precision", fields.Date)
	}
	if fields.Tags != "music, live" {
		t.Errorf("Tags = %q, want comma-separated display string", fields.Tags)
	}
	if !strings.HasSuffix(fields.Image, "/upload/image/64a1b2c3d4e5f6a7b8c9d0e1") {
		t.Errorf("Image = %q, want a display URL for the identifier", fields.Image)
	}
	if fields.Price != "25.5" {
		t.Errorf("Price = %q, want 25.5", fields.Price)
	}
}

func TestSubmitConvertsDisplayFormsBack(t *testing.T) {
	backend := &adminBackend{}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleAdmin)
	nav := &fakeNav{}
	vm := NewEventForm(client, &fakeNotifier{}, nav, "", testLogger())

	vm.SetFields(EventFormFields{
		Name:     "Open Air",
		Category: "Music",
		Date:     "2026-09-01T19:30",
		Venue:    "Park",
		Price:    "12",
		Tags:     "music, live,  outdoor",
		Image:    client.BaseURL() + "/upload/image/64a1b2c3d4e5f6a7b8c9d0e1",
	})
	vm.Submit(context.Background())

	got := backend.lastEventReq
	if want := []string{"music", "live", "outdoor"}; !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("submitted tags = %v, want %v", got.Tags, want)
	}
	if got.Image != "64a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("submitted image = %q, want the bare identifier", got.Image)
	}
	if got.Price != 12 {
		t.Errorf("submitted price = %v, want 12", got.Price)
	}
	if nav.last() != RouteAdminEvents {
		t.Errorf("navigated to %q, want %q", nav.last(), RouteAdminEvents)
	}
}

func TestSubmitPassesNonIdentifierImageVerbatim(t *testing.T) {
	backend := &adminBackend{}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleAdmin)
	vm := NewEventForm(client, &fakeNotifier{}, &fakeNav{}, "", testLogger())

	vm.SetFields(EventFormFields{Name: "X", Price: "1", Image: "http://cdn.example.com/pic.jpg"})
	vm.Submit(context.Background())

	if backend.lastEventReq.Image != "http://cdn.example.com/pic.jpg" {
		t.Errorf("submitted image = %q, want the original string", backend.lastEventReq.Image)
	}
}

func TestUploadImageStoresPreviewURL(t *testing.T) {
	backend := &adminBackend{}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleAdmin)
	notify := &fakeNotifier{}
	vm := NewEventForm(client, notify, &fakeNav{}, "", testLogger())

	vm.UploadImage(context.Background(), "poster.jpg", strings.NewReader("bytes"))

	fields := vm.Fields()
	want := client.BaseURL() + "/upload/image/64a1b2c3d4e5f6a7b8c9d0e1"
	if fields.Image != want {
		t.Errorf("Image = %q, want preview URL %q", fields.Image, want)
	}
	if len(notify.successes) != 1 {
		t.Errorf("got %d success notifications, want 1", len(notify.successes))
	}

	// The preview URL never reaches the server: submit strips it back.
	vm.SetFields(EventFormFields{Name: "X", Price: "1", Image: fields.Image})
	vm.Submit(context.Background())
	if backend.lastEventReq.Image != "64a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("submitted image = %q, want the bare identifier", backend.lastEventReq.Image)
	}
}

func TestSubmitRejectsBadPrice(t *testing.T) {
	backend := &adminBackend{}
	client, store, counting := newTestClient(t, backend)
	store.Set("tok", model.RoleAdmin)
	notify := &fakeNotifier{}
	vm := NewEventForm(client, notify, &fakeNav{}, "", testLogger())

	vm.SetFields(EventFormFields{Name: "X", Price: "free"})
	vm.Submit(context.Background())

	if counting.total() != 0 {
		t.Error("bad price still submitted")
	}
	if notify.lastError() == "" {
		t.Error("bad price produced no notification")
	}
}
