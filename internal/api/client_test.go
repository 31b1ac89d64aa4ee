package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemStore()
	return New(srv.URL, 5*time.Second, store, testLogger()), store
}

func TestAuthenticatedCallAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	store.Set("tok-abc", model.RoleUser)

	if _, err := client.MyBookings(context.Background()); err != nil {
		t.Fatalf("MyBookings() unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
}

func TestPublicCallSendsNoToken(t *testing.T) {
	var gotAuth string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"events":[],"page":1,"pages":1}`))
	}))
	store.Set("tok-abc", model.RoleUser)

	if _, err := client.ListEvents(context.Background(), 1, 8); err != nil {
		t.Fatalf("ListEvents() unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("public call sent Authorization %q", gotAuth)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindUnauthorized},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusConflict, KindValidation},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"msg":"nope"}`))
		}))

		_, err := client.GetEvent(context.Background(), "x")
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: error %T, want *Error", tt.status, err)
		}
		if apiErr.Kind != tt.want {
			t.Errorf("status %d: Kind = %v, want %v", tt.status, apiErr.Kind, tt.want)
		}
		if apiErr.Message != "nope" {
			t.Errorf("status %d: Message = %q, want nope", tt.status, apiErr.Message)
		}
	}
}

func TestNetworkFailure(t *testing.T) {
	store := session.NewMemStore()
	// Closed port: connection refused.
	client := New("http://127.0.0.1:1", time.Second, store, testLogger())

	_, err := client.ListEvents(context.Background(), 1, 8)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("error = %v, want KindNetwork *Error", err)
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(&Error{Kind: KindServer, Message: "boom"}, "fallback"); got != "boom" {
		t.Errorf("Message() = %q, want boom", got)
	}
	if got := Message(&Error{Kind: KindNetwork}, "fallback"); got != "fallback" {
		t.Errorf("Message() = %q, want fallback", got)
	}
	if got := Message(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("Message() = %q, want fallback", got)
	}
}

func TestUploadImageMultipart(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		f, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer f.Close()
		if header.Filename != "poster.jpg" {
			t.Errorf("filename = %q, want poster.jpg", header.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "jpegbytes" {
			t.Errorf("file content = %q", data)
		}
		w.Write([]byte(`{"imageId":"64a1b2c3d4e5f6a7b8c9d0e1"}`))
	}))
	store.Set("tok", model.RoleAdmin)

	id, err := client.UploadImage(context.Background(), "poster.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("UploadImage() unexpected error: %v", err)
	}
	if id != "64a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("UploadImage() = %q", id)
	}
}

func TestEventPageDecoding(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"events": [
				{"_id":"e1","name":"Jazz Night","category":"Music","tags":["live"],"image":{"_id":"64a1b2c3d4e5f6a7b8c9d0e1"}},
				{"_id":"e2","name":"Old Fair","category":"Fair","image":"/upload/image/old.jpg"}
			],
			"page": 2, "pages": 5
		}`))
	}))

	page, err := client.ListEvents(context.Background(), 2, 8)
	if err != nil {
		t.Fatalf("ListEvents() unexpected error: %v", err)
	}
	if page.Page != 2 || page.Pages != 5 {
		t.Errorf("pagination = %d/%d, want 2/5", page.Page, page.Pages)
	}
	if len(page.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(page.Events))
	}
	if page.Events[0].Image.ID != "64a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("object image ref = %+v", page.Events[0].Image)
	}
	if page.Events[1].Image.URL != "/upload/image/old.jpg" {
		t.Errorf("string image ref = %+v", page.Events[1].Image)
	}
}
