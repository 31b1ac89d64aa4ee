// Package ui is the terminal navigation and feedback shell. It renders
// whatever page the view-models describe, forwards user commands to them,
// and supplies the notification, confirmation, and navigation
// collaborators they expect.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/media"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
	"github.com/Basmalamoustafa/event-frontend/internal/viewmodel"
)

// Shell owns the route table and the interactive loop.
type Shell struct {
	client *api.Client
	store  session.Store
	logger *slog.Logger

	in  *bufio.Scanner
	out io.Writer

	catalog     *viewmodel.Catalog
	bookings    *viewmodel.Bookings
	auth        *viewmodel.Auth
	adminEvents *viewmodel.AdminEvents
	adminUsers  *viewmodel.AdminUsers

	route string
	quit  bool
}

// New wires the shell and its view-models together.
func New(client *api.Client, store session.Store, catalogPageSize, adminPageSize int, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	s := &Shell{
		client: client,
		store:  store,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
		route:  viewmodel.RouteHome,
	}
	s.catalog = viewmodel.NewCatalog(client, store, s, s, catalogPageSize, logger)
	s.bookings = viewmodel.NewBookings(client, store, s, s, logger)
	s.auth = viewmodel.NewAuth(client, store, s, s, logger)
	s.adminEvents = viewmodel.NewAdminEvents(client, s, s, adminPageSize, logger)
	s.adminUsers = viewmodel.NewAdminUsers(client, s, logger)
	return s
}

// Success implements viewmodel.Notifier.
func (s *Shell) Success(msg string) { fmt.Fprintf(s.out, "  ✔ %s\n", msg) }

// Error implements viewmodel.Notifier.
func (s *Shell) Error(msg string) { fmt.Fprintf(s.out, "  ✘ %s\n", msg) }

// Info implements viewmodel.Notifier.
func (s *Shell) Info(msg string) { fmt.Fprintf(s.out, "  ℹ %s\n", msg) }

// Confirm implements viewmodel.Confirmer with a blocking y/N prompt.
func (s *Shell) Confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

// To implements viewmodel.Navigator. The page's on-mount fetch happens
// when the route renders.
func (s *Shell) To(route string) {
	s.route = route
}

// Run enters the interactive loop until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) {
	s.mount(ctx)
	for !s.quit {
		s.render()
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		before := s.route
		s.handle(ctx, line)
		// A mount may itself navigate, e.g. the event form returning to
		// the admin list, so follow the chain until the route settles.
		for s.route != before {
			before = s.route
			s.mount(ctx)
		}
	}
}

// mount performs the entered route's initial fetch.
func (s *Shell) mount(ctx context.Context) {
	switch s.route {
	case viewmodel.RouteHome:
		s.catalog.LoadPage(ctx, 1)
	case viewmodel.RouteBookings:
		s.bookings.Load(ctx)
	case viewmodel.RouteAdminEvents:
		if s.requireAdmin() {
			s.adminEvents.LoadPage(ctx, 1)
		}
	case viewmodel.RouteAdminEventNew:
		if s.requireAdmin() {
			s.runEventForm(ctx, "")
		}
		if s.route == viewmodel.RouteAdminEventNew {
			s.route = viewmodel.RouteAdminEvents
		}
	case viewmodel.RouteAdminUsers:
		if s.requireAdmin() {
			s.adminUsers.Load(ctx)
		}
	}
}

func (s *Shell) requireAdmin() bool {
	if !s.store.Get().IsAdmin() {
		s.Error(s.tr("accessDenied"))
		s.route = viewmodel.RouteHome
		return false
	}
	return true
}

func (s *Shell) render() {
	fmt.Fprintf(s.out, "\n== %s ==\n", s.tr("brand"))
	s.renderNav()

	switch s.route {
	case viewmodel.RouteHome:
		s.renderCatalog()
	case viewmodel.RouteBookings:
		s.renderBookings()
	case viewmodel.RouteLogin:
		fmt.Fprintf(s.out, "%s — login <email> <password>\n", s.tr("login"))
	case viewmodel.RouteRegister:
		fmt.Fprintf(s.out, "%s — register <name> <email> <password> [admin]\n", s.tr("register"))
	case viewmodel.RouteCongratulations:
		s.renderCongratulations()
	case viewmodel.RouteAdminEvents:
		s.renderAdminEvents()
	case viewmodel.RouteAdminUsers:
		s.renderAdminUsers()
	}
}

// renderNav mirrors the navbar: links appear only when the session allows
// them.
func (s *Shell) renderNav() {
	sess := s.store.Get()
	items := []string{"home (" + s.tr("browse") + ")"}
	if sess.LoggedIn() {
		items = append(items, "bookings ("+s.tr("bookings")+")")
	}
	if sess.IsAdmin() {
		items = append(items, "admin-events ("+s.tr("adminEvents")+")", "admin-users ("+s.tr("adminUsers")+")")
	}
	if sess.LoggedIn() {
		items = append(items, "logout ("+s.tr("logout")+")")
	} else {
		items = append(items, "login ("+s.tr("login")+")", "register ("+s.tr("register")+")")
	}
	dark := s.tr("darkOn")
	if s.store.DarkMode() {
		dark = s.tr("darkOff")
	}
	items = append(items, "dark ("+dark+")", "lang en|ar", "quit")
	fmt.Fprintf(s.out, "[%s]\n", strings.Join(items, " | "))
}

func (s *Shell) renderCatalog() {
	switch s.catalog.Phase() {
	case viewmodel.PhaseLoading:
		fmt.Fprintln(s.out, "loading...")
		return
	case viewmodel.PhaseFailed:
		fmt.Fprintf(s.out, "! %s\n", s.catalog.Err())
		return
	}

	fmt.Fprintf(s.out, "%s: %s (current: %s)\n", s.tr("filterByCat"),
		strings.Join(s.catalog.Categories(), ", "), s.catalog.Category())

	events := s.catalog.Filtered()
	if len(events) == 0 {
		fmt.Fprintln(s.out, s.tr("noEvents"))
	}
	for i, ev := range events {
		status := s.tr("bookNow")
		if s.catalog.IsBooked(ev.ID) {
			status = s.tr("booked")
		}
		fmt.Fprintf(s.out, "%2d. %s — %s @ %s — $%.2f [%s] %s\n",
			i+1, ev.Name, ev.Date, ev.Venue, ev.Price, strings.Join(ev.Tags, ","), status)
	}
	fmt.Fprintf(s.out, "page %d/%d — commands: page <n>, filter <category>, book <n>, refresh\n",
		s.catalog.Page(), s.catalog.Pages())
}

func (s *Shell) renderBookings() {
	if s.bookings.Phase() == viewmodel.PhaseFailed {
		fmt.Fprintf(s.out, "! %s\n", s.bookings.Err())
	}
	items := s.bookings.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, s.tr("noBookings"))
		return
	}
	for i, b := range items {
		if b.Event == nil {
			fmt.Fprintf(s.out, "%2d. %s — %s\n", i+1, s.tr("orphanTitle"), s.tr("orphanBody"))
			continue
		}
		fmt.Fprintf(s.out, "%2d. %s @ %s — %s\n", i+1, b.Event.Name, b.Event.Venue,
			media.Resolve(s.client.BaseURL(), b.Event.Image))
	}
	fmt.Fprintln(s.out, "commands: delete <n>, refresh")
}

func (s *Shell) renderCongratulations() {
	ev := s.catalog.LastBooked()
	if ev == nil {
		s.route = viewmodel.RouteHome
		s.renderCatalog()
		return
	}
	fmt.Fprintf(s.out, "🎉 %s\n%s\n  %s — %s @ %s — $%.2f\n  %s\n",
		s.tr("congrats"), s.tr("congratsBody"),
		ev.Name, ev.Date, ev.Venue, ev.Price,
		media.Resolve(s.client.BaseURL(), ev.Image))
	fmt.Fprintf(s.out, "commands: home (%s)\n", s.tr("backToEvents"))
}

func (s *Shell) renderAdminEvents() {
	switch s.adminEvents.Phase() {
	case viewmodel.PhaseLoading:
		fmt.Fprintln(s.out, "loading...")
		return
	case viewmodel.PhaseFailed:
		fmt.Fprintf(s.out, "! %s\n", s.adminEvents.Err())
		return
	}
	for i, ev := range s.adminEvents.Events() {
		fmt.Fprintf(s.out, "%2d. %s — %s @ %s — $%.2f\n", i+1, ev.Name, ev.Date, ev.Venue, ev.Price)
	}
	fmt.Fprintf(s.out, "page %d/%d — commands: page <n>, new, edit <n>, delete <n>, refresh\n",
		s.adminEvents.Page(), s.adminEvents.Pages())
}

func (s *Shell) renderAdminUsers() {
	if s.adminUsers.Phase() == viewmodel.PhaseFailed {
		fmt.Fprintf(s.out, "! %s\n", s.adminUsers.Err())
		return
	}
	for i, u := range s.adminUsers.Users() {
		action := ""
		if u.Role != model.RoleAdmin {
			action = " [" + s.tr("promote") + "]"
		}
		fmt.Fprintf(s.out, "%2d. %s <%s> — %s%s\n", i+1, u.Name, u.Email, u.Role, action)
	}
	fmt.Fprintln(s.out, "commands: promote <n>, refresh")
}

func (s *Shell) handle(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		s.quit = true
	case "home":
		s.route = viewmodel.RouteHome
	case "bookings":
		s.route = viewmodel.RouteBookings
	case "admin-events":
		s.route = viewmodel.RouteAdminEvents
	case "admin-users":
		s.route = viewmodel.RouteAdminUsers
	case "login":
		s.handleLogin(ctx, args)
	case "register":
		s.handleRegister(ctx, args)
	case "logout":
		s.auth.Logout()
	case "dark":
		s.store.SetDarkMode(!s.store.DarkMode())
	case "lang":
		if len(args) == 1 && (args[0] == "en" || args[0] == "ar") {
			s.store.SetLocale(args[0])
		}
	case "refresh":
		s.mount(ctx)
	default:
		s.handleRouted(ctx, cmd, args)
	}
}

func (s *Shell) handleLogin(ctx context.Context, args []string) {
	if s.route != viewmodel.RouteLogin {
		s.route = viewmodel.RouteLogin
		return
	}
	if len(args) != 2 {
		s.Error("usage: login <email> <password>")
		return
	}
	s.auth.Login(ctx, args[0], args[1])
}

func (s *Shell) handleRegister(ctx context.Context, args []string) {
	if s.route != viewmodel.RouteRegister {
		s.route = viewmodel.RouteRegister
		return
	}
	if len(args) < 3 {
		s.Error("usage: register <name> <email> <password> [admin]")
		return
	}
	role := model.RoleUser
	if len(args) > 3 && args[3] == "admin" {
		role = model.RoleAdmin
	}
	s.auth.Register(ctx, model.RegisterRequest{
		Name: args[0], Email: args[1], Password: args[2], Role: role,
	})
}

// handleRouted dispatches the commands that only make sense on the
// current page.
func (s *Shell) handleRouted(ctx context.Context, cmd string, args []string) {
	switch s.route {
	case viewmodel.RouteHome:
		switch cmd {
		case "page":
			if n, ok := argInt(args); ok {
				s.catalog.LoadPage(ctx, n)
			}
		case "filter":
			if len(args) > 0 {
				s.catalog.SetCategory(strings.Join(args, " "))
			}
		case "book":
			if ev, ok := s.pickEvent(s.catalog.Filtered(), args); ok {
				s.catalog.Book(ctx, ev.ID)
			}
		}
	case viewmodel.RouteBookings:
		if cmd == "delete" {
			items := s.bookings.Items()
			if n, ok := argInt(args); ok && n >= 1 && n <= len(items) {
				s.bookings.Delete(ctx, items[n-1].ID)
			}
		}
	case viewmodel.RouteAdminEvents:
		s.handleAdminEvents(ctx, cmd, args)
	case viewmodel.RouteAdminUsers:
		if cmd == "promote" {
			users := s.adminUsers.Users()
			if n, ok := argInt(args); ok && n >= 1 && n <= len(users) {
				s.adminUsers.Promote(ctx, users[n-1].ID)
			}
		}
	}
}

func (s *Shell) handleAdminEvents(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "page":
		if n, ok := argInt(args); ok {
			s.adminEvents.LoadPage(ctx, n)
		}
	case "new":
		s.route = viewmodel.RouteAdminEventNew
	case "edit":
		if ev, ok := s.pickEvent(s.adminEvents.Events(), args); ok {
			s.runEventForm(ctx, ev.ID)
			s.adminEvents.LoadPage(ctx, s.adminEvents.Page())
		}
	case "delete":
		if ev, ok := s.pickEvent(s.adminEvents.Events(), args); ok {
			s.adminEvents.Delete(ctx, ev.ID)
		}
	}
}

// runEventForm walks the shared create/edit form: prompt per field, an
// optional image upload, then submit.
func (s *Shell) runEventForm(ctx context.Context, eventID string) {
	form := viewmodel.NewEventForm(s.client, s, s, eventID, s.logger)
	form.LoadForEdit(ctx)
	if form.Phase() == viewmodel.PhaseFailed {
		return
	}

	fields := form.Fields()
	fields.Name = s.prompt("Name", fields.Name)
	fields.Description = s.prompt("Description", fields.Description)
	fields.Category = s.prompt("Category", fields.Category)
	fields.Date = s.prompt("Date (YYYY-MM-DDTHH:MM)", fields.Date)
	fields.Venue = s.prompt("Venue", fields.Venue)
	fields.Price = s.prompt("Price", fields.Price)
	fields.Tags = s.prompt("Tags (comma separated)", fields.Tags)
	form.SetFields(fields)

	if path := s.prompt("Image file (empty to keep)", ""); path != "" {
		f, err := os.Open(path)
		if err != nil {
			s.Error("cannot open " + path)
		} else {
			form.UploadImage(ctx, f.Name(), f)
			f.Close()
		}
	}

	form.Submit(ctx)
}

// prompt shows the current value and returns the replacement, keeping the
// current value on empty input.
func (s *Shell) prompt(label, current string) string {
	fmt.Fprintf(s.out, "%s [%s]: ", label, current)
	if !s.in.Scan() {
		return current
	}
	if text := strings.TrimSpace(s.in.Text()); text != "" {
		return text
	}
	return current
}

func (s *Shell) pickEvent(events []model.Event, args []string) (model.Event, bool) {
	n, ok := argInt(args)
	if !ok || n < 1 || n > len(events) {
		return model.Event{}, false
	}
	return events[n-1], true
}

func argInt(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	return n, err == nil
}
