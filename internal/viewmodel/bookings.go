package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

// Bookings drives the "my bookings" page. Bookings whose event was deleted
// server-side come back with a nil event; they stay in the list so the
// user can still delete them.
type Bookings struct {
	client   *api.Client
	sessions session.Reader
	notify   Notifier
	confirm  Confirmer
	logger   *slog.Logger

	mu     sync.Mutex
	gen    uint64
	phase  Phase
	errMsg string
	items  []model.Booking
}

// NewBookings creates the bookings view-model.
func NewBookings(client *api.Client, sessions session.Reader, notify Notifier, confirm Confirmer, logger *slog.Logger) *Bookings {
	return &Bookings{
		client:   client,
		sessions: sessions,
		notify:   notify,
		confirm:  confirm,
		logger:   logger,
	}
}

// Load fetches the user's bookings. Without a session it notifies and
// leaves the list empty; it does not redirect.
func (b *Bookings) Load(ctx context.Context) {
	if !b.sessions.Get().LoggedIn() {
		b.mu.Lock()
		b.items = nil
		b.phase = PhaseLoaded
		b.errMsg = ""
		b.mu.Unlock()
		b.notify.Error("Please log in to view your bookings.")
		return
	}

	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.phase = PhaseLoading
	b.errMsg = ""
	b.mu.Unlock()

	items, err := b.client.MyBookings(ctx)

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	if err != nil {
		msg := api.Message(err, "Failed to fetch bookings.")
		b.phase = PhaseFailed
		b.errMsg = msg
		b.mu.Unlock()
		b.logger.Error("loading bookings failed", "error", err)
		b.notify.Error(msg)
		return
	}
	b.items = items
	b.phase = PhaseLoaded
	b.mu.Unlock()
}

// Phase returns the page's load state.
func (b *Bookings) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Err returns the inline error message for the Failed phase.
func (b *Bookings) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// Items returns the loaded bookings.
func (b *Bookings) Items() []model.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Booking(nil), b.items...)
}

// Delete removes a booking after a blocking confirmation. Declining is a
// no-op. On success the booking is removed from local state by identity;
// on failure the list is left untouched.
func (b *Bookings) Delete(ctx context.Context, bookingID string) {
	if !b.confirm.Confirm("Are you sure you want to delete this booking?") {
		return
	}

	if err := b.client.DeleteBooking(ctx, bookingID); err != nil {
		b.logger.Error("deleting booking failed", "booking", bookingID, "error", err)
		b.notify.Error(api.Message(err, "Failed to delete booking."))
		return
	}

	b.mu.Lock()
	kept := b.items[:0]
	for _, item := range b.items {
		if item.ID != bookingID {
			kept = append(kept, item)
		}
	}
	b.items = kept
	b.mu.Unlock()

	b.notify.Success("Booking deleted successfully.")
}
