// Package session holds the client's authentication state and display
// preferences across runs. The store is the only cross-page mutable state
// in the application; everything else is per-page view cache.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
)

// Reader is the read-only view of the store, enough for attaching
// credentials to outbound requests.
type Reader interface {
	Get() model.Session
}

// Store is the full session and preference contract handed to
// view-models and the shell.
type Store interface {
	Reader
	Set(token string, role model.Role)
	Clear()
	DarkMode() bool
	SetDarkMode(on bool)
	Locale() string
	SetLocale(locale string)
}

type state struct {
	Token    string     `json:"token,omitempty"`
	Role     model.Role `json:"role,omitempty"`
	DarkMode bool       `json:"darkMode"`
	Locale   string     `json:"locale,omitempty"`
}

// FileStore persists state as a JSON file, read once at construction and
// rewritten on every change.
type FileStore struct {
	mu     sync.Mutex
	path   string
	state  state
	logger *slog.Logger
}

// NewFileStore loads any existing state from path. A missing or unreadable
// file starts an empty session rather than failing startup.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	s := &FileStore{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("session state unreadable, starting fresh", "path", path, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		logger.Warn("session state corrupt, starting fresh", "path", path, "error", err)
		s.state = state{}
	}
	return s
}

// Get returns the current session.
func (s *FileStore) Get() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Session{Token: s.state.Token, Role: s.state.Role}
}

// Set stores the token and role together. A role without a token is never
// stored; an empty token clears both fields.
func (s *FileStore) Set(token string, role model.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		role = ""
	}
	s.state.Token = token
	s.state.Role = role
	s.save()
}

// Clear destroys the session. Display preferences survive logout.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	s.state.Role = ""
	s.save()
}

// DarkMode returns the persisted dark-mode preference.
func (s *FileStore) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DarkMode
}

// SetDarkMode persists the dark-mode preference.
func (s *FileStore) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DarkMode = on
	s.save()
}

// Locale returns the persisted locale, defaulting to English.
func (s *FileStore) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Locale == "" {
		return "en"
	}
	return s.state.Locale
}

// SetLocale persists the locale preference.
func (s *FileStore) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Locale = locale
	s.save()
}

// save writes the state file via a temp-file rename so a crash mid-write
// never leaves a truncated file. Callers hold the mutex.
func (s *FileStore) save() {
	if err := s.write(); err != nil {
		s.logger.Error("persisting session state failed", "path", s.path, "error", err)
	}
}

func (s *FileStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and throwaway runs.
type MemStore struct {
	mu       sync.Mutex
	session  model.Session
	darkMode bool
	locale   string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Get() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *MemStore) Set(token string, role model.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" {
		role = ""
	}
	m.session = model.Session{Token: token, Role: role}
}

func (m *MemStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = model.Session{}
}

func (m *MemStore) DarkMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.darkMode
}

func (m *MemStore) SetDarkMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.darkMode = on
}

func (m *MemStore) Locale() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locale == "" {
		return "en"
	}
	return m.locale
}

func (m *MemStore) SetLocale(locale string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locale = locale
}
