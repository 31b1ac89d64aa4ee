// Package viewmodel holds the per-page state of the client: what was
// fetched, what the user may do with it, and how mutations reconcile with
// the server. View-models never render anything; the shell reads their
// state and forwards user actions.
package viewmodel

// Routes understood by the navigation shell, mirroring the page table of
// the web client this replaces.
const (
	RouteHome            = "/"
	RouteLogin           = "/login"
	RouteRegister        = "/register"
	RouteBookings        = "/bookings"
	RouteCongratulations = "/congratulations"
	RouteAdminEvents     = "/admin/events"
	RouteAdminEventNew   = "/admin/events/new"
	RouteAdminUsers      = "/admin/users"
)

// Notifier shows transient user-visible feedback. Every adapter failure
// ends up here; nothing escapes to a global handler.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Navigator switches the shell to another page.
type Navigator interface {
	To(route string)
}

// Confirmer blocks for a yes/no answer before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Phase is the lifecycle of every list-bearing page: loading, loaded, or
// failed. Any explicit load re-enters Loading; no state is terminal.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseFailed
)
