package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// AdminUsers drives the admin user listing. Promotion patches the affected
// row in place; there is no demotion path.
type AdminUsers struct {
	client *api.Client
	notify Notifier
	logger *slog.Logger

	mu     sync.Mutex
	gen    uint64
	phase  Phase
	errMsg string
	users  []model.User
}

// NewAdminUsers creates the admin user listing view-model.
func NewAdminUsers(client *api.Client, notify Notifier, logger *slog.Logger) *AdminUsers {
	return &AdminUsers{
		client: client,
		notify: notify,
		logger: logger,
	}
}

// Load fetches all users.
func (a *AdminUsers) Load(ctx context.Context) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.phase = PhaseLoading
	a.errMsg = ""
	a.mu.Unlock()

	users, err := a.client.ListUsers(ctx)

	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	if err != nil {
		a.phase = PhaseFailed
		a.errMsg = "Failed to load users"
		a.mu.Unlock()
		a.logger.Error("loading users failed", "error", err)
		a.notify.Error("Failed to load users")
		return
	}
	a.users = users
	a.phase = PhaseLoaded
	a.mu.Unlock()
}

// Phase returns the page's load state.
func (a *AdminUsers) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Err returns the inline error message for the Failed phase.
func (a *AdminUsers) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Users returns the loaded rows.
func (a *AdminUsers) Users() []model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.User(nil), a.users...)
}

// Promote raises a user to admin. On success the matching row's role is
// patched locally by identity; no re-fetch happens. On failure the rows
// stay untouched.
func (a *AdminUsers) Promote(ctx context.Context, userID string) {
	if err := a.client.PromoteUser(ctx, userID); err != nil {
		a.logger.Error("promoting user failed", "user", userID, "error", err)
		a.notify.Error(api.Message(err, "Promotion failed"))
		return
	}

	a.mu.Lock()
	for i := range a.users {
		if a.users[i].ID == userID {
			a.users[i].Role = model.RoleAdmin
		}
	}
	a.mu.Unlock()

	a.notify.Success("User promoted to admin")
}
