package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrAlreadyBooked  = errors.New("already booked")
)

type storedUser struct {
	model.User
	PasswordHash string
}

type storedBooking struct {
	ID      string
	EventID string
	UserID  string
}

type storedImage struct {
	ContentType string
	Data        []byte
}

// Store is the dev server's in-memory state. Slices keep insertion order
// so listings are stable across requests.
type Store struct {
	mu       sync.Mutex
	users    []storedUser
	events   []model.Event
	bookings []storedBooking
	images   map[string]storedImage
}

func NewStore() *Store {
	return &Store{images: map[string]storedImage{}}
}

// newID returns a random 24-character hex identifier, the id shape the
// client expects everywhere.
func newID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *Store) CreateUser(name, email, passwordHash string, role model.Role) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, ErrDuplicateEmail
		}
	}
	user := model.User{ID: newID(), Name: name, Email: email, Role: role}
	s.users = append(s.users, storedUser{User: user, PasswordHash: passwordHash})
	return user, nil
}

func (s *Store) UserByEmail(email string) (model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u.User, u.PasswordHash, nil
		}
	}
	return model.User{}, "", ErrNotFound
}

func (s *Store) ListUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.User
	}
	return out
}

// PromoteUser raises a user to admin. There is no demotion counterpart.
func (s *Store) PromoteUser(id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = model.RoleAdmin
			return s.users[i].User, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *Store) CreateEvent(ev model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = newID()
	s.events = append(s.events, ev)
	return ev
}

func (s *Store) UpdateEvent(id string, ev model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			ev.ID = id
			s.events[i] = ev
			return ev, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// DeleteEvent removes an event. Bookings that reference it are kept and
// become orphaned.
func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) EventByID(id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventByIDLocked(id)
}

func (s *Store) eventByIDLocked(id string) (model.Event, error) {
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// ListEvents returns one page of events plus pagination metadata. An
// out-of-range page is clamped; pages is at least 1 even when empty.
func (s *Store) ListEvents(page, limit int) (model.EventPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 1 {
		limit = 8
	}
	pages := (len(s.events) + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(s.events) {
		start = len(s.events)
	}
	if end > len(s.events) {
		end = len(s.events)
	}

	events := make([]model.Event, end-start)
	copy(events, s.events[start:end])
	return model.EventPage{Events: events, Page: page, Pages: pages}, nil
}

func (s *Store) CreateBooking(userID, eventID string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.eventByIDLocked(eventID)
	if err != nil {
		return model.Booking{}, ErrNotFound
	}
	for _, b := range s.bookings {
		if b.UserID == userID && b.EventID == eventID {
			return model.Booking{}, ErrAlreadyBooked
		}
	}

	b := storedBooking{ID: newID(), EventID: eventID, UserID: userID}
	s.bookings = append(s.bookings, b)
	return model.Booking{ID: b.ID, Event: &ev, User: userID}, nil
}

// BookingsByUser joins each booking with its event; deleted events come
// back nil so the client sees the orphaned shape.
func (s *Store) BookingsByUser(userID string) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Booking{}
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		booking := model.Booking{ID: b.ID, User: userID}
		if ev, err := s.eventByIDLocked(b.EventID); err == nil {
			evCopy := ev
			booking.Event = &evCopy
		}
		out = append(out, booking)
	}
	return out
}

func (s *Store) DeleteBooking(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID == id && b.UserID == userID {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) SaveImage(contentType string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newID()
	s.images[id] = storedImage{ContentType: contentType, Data: data}
	return id
}

func (s *Store) ImageByID(id string) (storedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.images[id]
	if !ok {
		return storedImage{}, ErrNotFound
	}
	return img, nil
}
