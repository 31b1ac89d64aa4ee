package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

// Auth drives the login and registration pages and owns the only writes
// to the session store.
type Auth struct {
	client   *api.Client
	sessions session.Store
	notify   Notifier
	nav      Navigator
	logger   *slog.Logger

	mu     sync.Mutex
	errMsg string
}

// NewAuth creates the auth view-model.
func NewAuth(client *api.Client, sessions session.Store, notify Notifier, nav Navigator, logger *slog.Logger) *Auth {
	return &Auth{
		client:   client,
		sessions: sessions,
		notify:   notify,
		nav:      nav,
		logger:   logger,
	}
}

// Err returns the inline form error from the last failed submit.
func (a *Auth) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Login authenticates. On success the token and role are stored together
// and the shell moves to the admin events page for admins, home otherwise.
// On failure the session stays untouched and no navigation happens.
func (a *Auth) Login(ctx context.Context, email, password string) {
	a.setErr("")

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		msg := api.Message(err, "Failed to log in. Please check your credentials.")
		a.setErr(msg)
		a.notify.Error(msg)
		return
	}

	a.sessions.Set(resp.Token, resp.User.Role)
	a.notify.Success("Logged in successfully as " + string(resp.User.Role) + ".")
	a.navigateByRole(resp.User.Role)
}

// Register creates an account. The stored role is the one the user chose
// on the form; the server only returns a token.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) {
	a.setErr("")

	resp, err := a.client.Register(ctx, req)
	if err != nil {
		msg := api.Message(err, "Registration failed")
		a.setErr(msg)
		a.notify.Error(msg)
		return
	}

	a.sessions.Set(resp.Token, req.Role)
	a.notify.Success("Account created successfully!")
	a.navigateByRole(req.Role)
}

// Logout destroys the session and returns to the login page.
func (a *Auth) Logout() {
	a.sessions.Clear()
	a.nav.To(RouteLogin)
}

func (a *Auth) navigateByRole(role model.Role) {
	if role == model.RoleAdmin {
		a.nav.To(RouteAdminEvents)
		return
	}
	a.nav.To(RouteHome)
}

func (a *Auth) setErr(msg string) {
	a.mu.Lock()
	a.errMsg = msg
	a.mu.Unlock()
}
