// Package devserver is an in-memory implementation of the event-booking
// API the client talks to. It exists for local development and for
// integration tests; nothing it stores survives a restart.
package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Basmalamoustafa/event-frontend/internal/media"
	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// Server serves the event-booking API over an in-memory store.
type Server struct {
	store  *Store
	secret string
	expiry time.Duration
	logger *slog.Logger
}

// New creates a Server with an empty store.
func New(secret string, expiry time.Duration, logger *slog.Logger) *Server {
	return &Server{
		store:  NewStore(),
		secret: secret,
		expiry: expiry,
		logger: logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(5, 10))
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
	})

	r.Get("/events", s.handleListEvents)
	r.Get("/events/{id}", s.handleGetEvent)
	r.Get("/upload/image/{id}", s.handleGetImage)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(s.secret))
		r.Get("/bookings/my", s.handleMyBookings)
		r.Post("/bookings", s.handleCreateBooking)
		r.Delete("/bookings/{id}", s.handleDeleteBooking)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/events", s.handleCreateEvent)
			r.Put("/events/{id}", s.handleUpdateEvent)
			r.Delete("/events/{id}", s.handleDeleteEvent)
			r.Post("/upload/image", s.handleUploadImage)
			r.Get("/users", s.handleListUsers)
			r.Patch("/auth/promote/{id}", s.handlePromoteUser)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		writeMsg(w, http.StatusBadRequest, "unknown role")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := s.store.CreateUser(req.Name, req.Email, hash, role)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			writeMsg(w, http.StatusConflict, "email already registered")
			return
		}
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := GenerateToken(user.ID, user.Role, s.secret, s.expiry)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, model.AuthResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, hash, err := s.store.UserByEmail(req.Email)
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	match, err := VerifyPassword(req.Password, hash)
	if err != nil || !match {
		writeMsg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := GenerateToken(user.ID, user.Role, s.secret, s.expiry)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{Token: token, User: user})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := s.store.ListEvents(page, limit)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.EventByID(chi.URLParam(r, "id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}
	ev := s.store.CreateEvent(eventFromRequest(req))
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}
	ev, err := s.store.UpdateEvent(chi.URLParam(r, "id"), eventFromRequest(req))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEvent(chi.URLParam(r, "id")); err != nil {
		writeMsg(w, http.StatusNotFound, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEventRequest(w http.ResponseWriter, r *http.Request) (model.EventRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return model.EventRequest{}, false
	}
	if req.Name == "" {
		writeMsg(w, http.StatusBadRequest, "event name is required")
		return model.EventRequest{}, false
	}
	return req, true
}

func eventFromRequest(req model.EventRequest) model.Event {
	ev := model.Event{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Venue:       req.Venue,
		Price:       req.Price,
		Tags:        req.Tags,
	}
	if req.Image != "" {
		if id, ok := media.ExtractID(req.Image); ok {
			ev.Image = model.ImageRef{ID: id}
		} else {
			ev.Image = model.ImageRef{URL: req.Image}
		}
	}
	return ev
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, s.store.BookingsByUser(id.UserID))
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID == "" {
		writeMsg(w, http.StatusBadRequest, "eventId is required")
		return
	}

	booking, err := s.store.CreateBooking(id.UserID, req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeMsg(w, http.StatusNotFound, "event not found")
		case errors.Is(err, ErrAlreadyBooked):
			writeMsg(w, http.StatusBadRequest, "You have already booked this event")
		default:
			writeMsg(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.store.DeleteBooking(id.UserID, chi.URLParam(r, "id")); err != nil {
		writeMsg(w, http.StatusNotFound, "booking not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListUsers())
}

func (s *Server) handlePromoteUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.PromoteUser(chi.URLParam(r, "id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil { // 8MB
		writeMsg(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "internal server error")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	id := s.store.SaveImage(contentType, data)
	writeJSON(w, http.StatusOK, model.UploadResponse{ImageID: id})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.store.ImageByID(chi.URLParam(r, "id"))
	if err != nil {
		writeMsg(w, http.StatusNotFound, "image not found")
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Write(img.Data)
}
