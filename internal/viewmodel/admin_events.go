package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// AdminEvents drives the admin event listing. Its page size is independent
// from the public catalog's.
type AdminEvents struct {
	client   *api.Client
	notify   Notifier
	confirm  Confirmer
	logger   *slog.Logger
	pageSize int

	mu     sync.Mutex
	gen    uint64
	phase  Phase
	errMsg string
	events []model.Event
	page   int
	pages  int
}

// NewAdminEvents creates the admin event listing view-model.
func NewAdminEvents(client *api.Client, notify Notifier, confirm Confirmer, pageSize int, logger *slog.Logger) *AdminEvents {
	return &AdminEvents{
		client:   client,
		notify:   notify,
		confirm:  confirm,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
		pages:    1,
	}
}

// LoadPage fetches one page of events. The current page number is taken
// from the response, not the request.
func (a *AdminEvents) LoadPage(ctx context.Context, page int) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.phase = PhaseLoading
	a.errMsg = ""
	a.mu.Unlock()

	eventPage, err := a.client.ListEvents(ctx, page, a.pageSize)

	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	if err != nil {
		a.phase = PhaseFailed
		a.errMsg = "Failed to load events"
		a.mu.Unlock()
		a.logger.Error("loading admin events failed", "page", page, "error", err)
		a.notify.Error("Failed to load events")
		return
	}
	a.events = eventPage.Events
	a.page = eventPage.Page
	a.pages = eventPage.Pages
	a.phase = PhaseLoaded
	a.mu.Unlock()
}

// Phase returns the page's load state.
func (a *AdminEvents) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Err returns the inline error message for the Failed phase.
func (a *AdminEvents) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Events returns the loaded page.
func (a *AdminEvents) Events() []model.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Event(nil), a.events...)
}

// Page returns the current page number.
func (a *AdminEvents) Page() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

// Pages returns the total page count.
func (a *AdminEvents) Pages() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pages
}

// Delete removes an event after confirmation, then re-fetches the current
// page: the server decides what the page looks like afterwards.
func (a *AdminEvents) Delete(ctx context.Context, eventID string) {
	if !a.confirm.Confirm("Delete this event?") {
		return
	}

	if err := a.client.DeleteEvent(ctx, eventID); err != nil {
		a.logger.Error("deleting event failed", "event", eventID, "error", err)
		a.notify.Error(api.Message(err, "Delete failed"))
		return
	}
	a.notify.Success("Event deleted")

	a.mu.Lock()
	page := a.page
	a.mu.Unlock()
	a.LoadPage(ctx, page)
}
