package viewmodel

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeNotifier records every notification by level.
type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (f *fakeNotifier) Success(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, msg)
}

func (f *fakeNotifier) Error(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, msg)
}

func (f *fakeNotifier) Info(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, msg)
}

func (f *fakeNotifier) lastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errors) == 0 {
		return ""
	}
	return f.errors[len(f.errors)-1]
}

// fakeNav records navigations.
type fakeNav struct {
	mu     sync.Mutex
	visits []string
}

func (f *fakeNav) To(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, route)
}

func (f *fakeNav) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.visits) == 0 {
		return ""
	}
	return f.visits[len(f.visits)-1]
}

// fakeConfirm answers every prompt with a fixed result.
type fakeConfirm struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirm) Confirm(prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}

// countingHandler wraps a handler and counts requests per method+path.
type countingHandler struct {
	mu    sync.Mutex
	hits  map[string]int
	inner http.Handler
}

func newCountingHandler(inner http.Handler) *countingHandler {
	return &countingHandler{hits: map[string]int{}, inner: inner}
}

func (c *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.hits[r.Method+" "+r.URL.Path]++
	c.mu.Unlock()
	c.inner.ServeHTTP(w, r)
}

func (c *countingHandler) count(methodPath string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[methodPath]
}

func (c *countingHandler) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.hits {
		n += v
	}
	return n
}

func newTestClient(t *testing.T, handler http.Handler) (*api.Client, *session.MemStore, *countingHandler) {
	t.Helper()
	counting := newCountingHandler(handler)
	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)
	store := session.NewMemStore()
	return api.New(srv.URL, 5*time.Second, store, testLogger()), store, counting
}
