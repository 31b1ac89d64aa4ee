package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

// CategoryAll is the sentinel filter selection matching every event.
const CategoryAll = "All"

// Catalog drives the public event-browsing page: a paginated event list,
// the user's bookings for booked-status, and a page-local category filter.
type Catalog struct {
	client   *api.Client
	sessions session.Reader
	notify   Notifier
	nav      Navigator
	logger   *slog.Logger
	pageSize int

	mu         sync.Mutex
	gen        uint64
	phase      Phase
	errMsg     string
	events     []model.Event
	bookings   []model.Booking
	page       int
	pages      int
	category   string
	lastBooked *model.Event
}

// NewCatalog creates the catalog view-model.
func NewCatalog(client *api.Client, sessions session.Reader, notify Notifier, nav Navigator, pageSize int, logger *slog.Logger) *Catalog {
	return &Catalog{
		client:   client,
		sessions: sessions,
		notify:   notify,
		nav:      nav,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
		pages:    1,
		category: CategoryAll,
	}
}

// LoadPage fetches one catalog page and, when a session exists, the
// current user's bookings. Either failure collapses into a single error
// state. A load superseded by a newer one discards its results.
func (c *Catalog) LoadPage(ctx context.Context, page int) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.phase = PhaseLoading
	c.errMsg = ""
	c.mu.Unlock()

	eventPage, err := c.client.ListEvents(ctx, page, c.pageSize)

	var bookings []model.Booking
	if err == nil && c.sessions.Get().LoggedIn() {
		bookings, err = c.client.MyBookings(ctx)
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded catalog load", "page", page)
		return
	}
	if err != nil {
		c.phase = PhaseFailed
		c.errMsg = "Failed to load data."
		c.mu.Unlock()
		c.notify.Error("Failed to load data.")
		return
	}
	c.events = eventPage.Events
	c.bookings = bookings
	c.page = eventPage.Page
	c.pages = eventPage.Pages
	c.category = CategoryAll
	c.phase = PhaseLoaded
	c.mu.Unlock()
}

// Phase returns the page's load state.
func (c *Catalog) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the inline error message for the Failed phase.
func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Page returns the current page number.
func (c *Catalog) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Pages returns the total page count reported by the server.
func (c *Catalog) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages
}

// Categories lists the filter options: "All" plus the distinct categories
// present on the loaded page, in first-seen order. The options therefore
// shift as the user paginates; that matches the behavior this client
// replaces.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	cats := []string{CategoryAll}
	seen := map[string]bool{}
	for _, e := range c.events {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	return cats
}

// SetCategory changes the local filter. It never triggers a fetch.
func (c *Catalog) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
}

// Category returns the current filter selection.
func (c *Catalog) Category() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// Filtered returns the loaded page narrowed to the selected category, or
// the whole page for "All".
func (c *Catalog) Filtered() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.category == CategoryAll {
		return append([]model.Event(nil), c.events...)
	}
	var out []model.Event
	for _, e := range c.events {
		if e.Category == c.category {
			out = append(out, e)
		}
	}
	return out
}

// IsBooked reports whether some loaded booking references the event. It is
// recomputed on every call, never cached across fetches.
func (c *Catalog) IsBooked(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.bookings {
		if b.Event != nil && b.Event.ID == eventID {
			return true
		}
	}
	return false
}

// Book books an event for the current user. Without a session it redirects
// to login and issues no request. On success the booking list is
// re-fetched rather than patched, then the shell moves to the
// congratulations page with the booked event available via LastBooked.
func (c *Catalog) Book(ctx context.Context, eventID string) {
	if !c.sessions.Get().LoggedIn() {
		c.notify.Info("Please log in to book events.")
		c.nav.To(RouteLogin)
		return
	}

	if _, err := c.client.CreateBooking(ctx, eventID); err != nil {
		c.notify.Error(api.Message(err, "Booking failed."))
		return
	}
	c.notify.Success("Booked successfully!")

	bookings, err := c.client.MyBookings(ctx)
	if err != nil {
		c.notify.Error(api.Message(err, "Booking failed."))
		return
	}

	c.mu.Lock()
	c.bookings = bookings
	var booked *model.Event
	for i := range c.events {
		if c.events[i].ID == eventID {
			ev := c.events[i]
			booked = &ev
			break
		}
	}
	c.lastBooked = booked
	c.mu.Unlock()

	c.nav.To(RouteCongratulations)
}

// LastBooked returns the event behind the most recent successful booking,
// for the congratulations page. Nil when nothing was booked this session.
func (c *Catalog) LastBooked() *model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastBooked
}
