package viewmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// catalogBackend is a minimal stateful stand-in for the events and
// bookings endpoints.
type catalogBackend struct {
	mu       sync.Mutex
	events   []model.Event
	bookings []model.Booking
	pages    int
	bookErr  string
}

func (b *catalogBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/events":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		json.NewEncoder(w).Encode(model.EventPage{Events: b.events, Page: page, Pages: b.pages})
	case r.Method == http.MethodGet && r.URL.Path == "/bookings/my":
		out := b.bookings
		if out == nil {
			out = []model.Booking{}
		}
		json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodPost && r.URL.Path == "/bookings":
		if b.bookErr != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"msg":%q}`, b.bookErr)
			return
		}
		var req model.BookingRequest
		json.NewDecoder(r.Body).Decode(&req)
		for i := range b.events {
			if b.events[i].ID == req.EventID {
				ev := b.events[i]
				b.bookings = append(b.bookings, model.Booking{ID: "bk-" + ev.ID, Event: &ev, User: "u1"})
			}
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"bk"}`))
	default:
		http.NotFound(w, r)
	}
}

func someEvents() []model.Event {
	return []model.Event{
		{ID: "e1", Name: "Jazz Night", Category: "Music"},
		{ID: "e2", Name: "Food Truck Fair", Category: "Food"},
		{ID: "e3", Name: "Open Mic", Category: "Music"},
	}
}

func TestLoadPageSetsPagination(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 4}
	client, store, _ := newTestClient(t, backend)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 3)

	if vm.Phase() != PhaseLoaded {
		t.Fatalf("Phase() = %v, want Loaded", vm.Phase())
	}
	if vm.Page() != 3 || vm.Pages() != 4 {
		t.Errorf("pagination = %d/%d, want 3/4", vm.Page(), vm.Pages())
	}
}

func TestCategoriesDerivedFromLoadedPage(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 1}
	client, store, _ := newTestClient(t, backend)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 1)

	got := vm.Categories()
	want := []string{"All", "Music", "Food"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterIsLocalAndResetsOnLoad(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 1}
	client, store, counting := newTestClient(t, backend)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 1)
	fetches := counting.count("GET /events")

	vm.SetCategory("Music")
	filtered := vm.Filtered()
	if len(filtered) != 2 {
		t.Fatalf("Filtered() returned %d events, want 2", len(filtered))
	}
	for _, e := range filtered {
		if e.Category != "Music" {
			t.Errorf("Filtered() includes category %q", e.Category)
		}
	}
	if counting.count("GET /events") != fetches {
		t.Error("SetCategory triggered a fetch")
	}

	vm.LoadPage(context.Background(), 1)
	if vm.Category() != CategoryAll {
		t.Errorf("Category() after reload = %q, want All", vm.Category())
	}
	if len(vm.Filtered()) != 3 {
		t.Errorf("Filtered() after reload returned %d events, want full page", len(vm.Filtered()))
	}
}

func TestIsBookedDerivation(t *testing.T) {
	ev := model.Event{ID: "e1", Name: "Jazz Night", Category: "Music"}
	backend := &catalogBackend{
		events:   someEvents(),
		pages:    1,
		bookings: []model.Booking{{ID: "b1", Event: &ev, User: "u1"}},
	}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleUser)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 1)

	if !vm.IsBooked("e1") {
		t.Error("IsBooked(e1) = false, want true")
	}
	if vm.IsBooked("e2") {
		t.Error("IsBooked(e2) = true, want false")
	}
}

func TestIsBookedIgnoresOrphanedBookings(t *testing.T) {
	backend := &catalogBackend{
		events:   someEvents(),
		pages:    1,
		bookings: []model.Booking{{ID: "b1", Event: nil, User: "u1"}},
	}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleUser)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 1)

	for _, e := range someEvents() {
		if vm.IsBooked(e.ID) {
			t.Errorf("IsBooked(%s) = true from orphaned booking", e.ID)
		}
	}
}

func TestBookWithoutSessionRedirectsWithoutRequest(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 1}
	client, store, counting := newTestClient(t, backend)
	notify := &fakeNotifier{}
	nav := &fakeNav{}
	vm := NewCatalog(client, store, notify, nav, 8, testLogger())

	before := counting.total()
	vm.Book(context.Background(), "e1")

	if counting.total() != before {
		t.Error("Book() without session issued a network request")
	}
	if nav.last() != RouteLogin {
		t.Errorf("Book() navigated to %q, want %q", nav.last(), RouteLogin)
	}
	if len(notify.infos) != 1 {
		t.Errorf("Book() produced %d info notifications, want 1", len(notify.infos))
	}
}

func TestBookSuccessRefetchesAndNavigates(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 1}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleUser)
	notify := &fakeNotifier{}
	nav := &fakeNav{}
	vm := NewCatalog(client, store, notify, nav, 8, testLogger())

	vm.LoadPage(context.Background(), 1)
	if vm.IsBooked("e1") {
		t.Fatal("e1 booked before Book()")
	}

	vm.Book(context.Background(), "e1")

	if !vm.IsBooked("e1") {
		t.Error("IsBooked(e1) = false after booking")
	}
	if vm.IsBooked("e2") {
		t.Error("booking e1 flipped e2")
	}
	if nav.last() != RouteCongratulations {
		t.Errorf("navigated to %q, want %q", nav.last(), RouteCongratulations)
	}
	booked := vm.LastBooked()
	if booked == nil || booked.ID != "e1" {
		t.Errorf("LastBooked() = %+v, want e1", booked)
	}
}

func TestBookFailureShowsServerMessage(t *testing.T) {
	backend := &catalogBackend{events: someEvents(), pages: 1, bookErr: "Event is sold out"}
	client, store, _ := newTestClient(t, backend)
	store.Set("tok", model.RoleUser)
	notify := &fakeNotifier{}
	nav := &fakeNav{}
	vm := NewCatalog(client, store, notify, nav, 8, testLogger())

	vm.LoadPage(context.Background(), 1)
	vm.Book(context.Background(), "e1")

	if notify.lastError() != "Event is sold out" {
		t.Errorf("error notification = %q, want server message verbatim", notify.lastError())
	}
	if nav.last() != "" {
		t.Errorf("failed booking navigated to %q", nav.last())
	}
}

func TestLoadFailureSetsErrorState(t *testing.T) {
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	notify := &fakeNotifier{}
	vm := NewCatalog(client, store, notify, &fakeNav{}, 8, testLogger())

	vm.LoadPage(context.Background(), 1)

	if vm.Phase() != PhaseFailed {
		t.Fatalf("Phase() = %v, want Failed", vm.Phase())
	}
	if vm.Err() == "" {
		t.Error("Err() empty after failed load")
	}
	if len(notify.errors) != 1 {
		t.Errorf("failed load produced %d error notifications, want 1", len(notify.errors))
	}
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstArrived := make(chan struct{})
	var once sync.Once

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "1" {
			once.Do(func() { close(firstArrived) })
			<-release
		}
		events := []model.Event{{ID: "p" + page, Name: "Event " + page, Category: "Music"}}
		p, _ := strconv.Atoi(page)
		json.NewEncoder(w).Encode(model.EventPage{Events: events, Page: p, Pages: 2})
	})

	client, store, _ := newTestClient(t, handler)
	vm := NewCatalog(client, store, &fakeNotifier{}, &fakeNav{}, 8, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vm.LoadPage(context.Background(), 1)
	}()

	<-firstArrived
	vm.LoadPage(context.Background(), 2)
	close(release)
	wg.Wait()

	if vm.Page() != 2 {
		t.Errorf("Page() = %d, want 2 (stale page 1 applied)", vm.Page())
	}
	events := vm.Filtered()
	if len(events) != 1 || events[0].ID != "p2" {
		t.Errorf("events = %+v, want the page 2 payload", events)
	}
}
