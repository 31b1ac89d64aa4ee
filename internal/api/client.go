// Package api is the outbound HTTP adapter for the event-booking API.
// It owns base-URL handling, bearer-token attachment, and the mapping of
// transport and HTTP failures into the client error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Basmalamoustafa/event-frontend/internal/model"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
)

// Client talks to the remote event-booking API.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Reader
	logger   *slog.Logger
}

// New creates a Client. The session reader is consulted at dispatch time
// for every authenticated request, so a login that happens after
// construction is picked up automatically.
func New(baseURL string, timeout time.Duration, sessions session.Reader, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		logger:   logger,
	}
}

// BaseURL returns the configured API base URL, used for building image
// display URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEvents fetches one page of the public catalog.
func (c *Client) ListEvents(ctx context.Context, page, limit int) (model.EventPage, error) {
	var out model.EventPage
	path := fmt.Sprintf("/events?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return model.EventPage{}, err
	}
	return out, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (model.Event, error) {
	var out model.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, false, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// CreateEvent creates an event. Admin token required.
func (c *Client) CreateEvent(ctx context.Context, req model.EventRequest) (model.Event, error) {
	var out model.Event
	if err := c.do(ctx, http.MethodPost, "/events", req, true, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// UpdateEvent updates an event by id. Admin token required.
func (c *Client) UpdateEvent(ctx context.Context, id string, req model.EventRequest) (model.Event, error) {
	var out model.Event
	if err := c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), req, true, &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// DeleteEvent deletes an event by id. Admin token required.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, true, nil)
}

// MyBookings fetches the current user's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/my", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBooking books an event for the current user.
func (c *Client) CreateBooking(ctx context.Context, eventID string) (model.Booking, error) {
	var out model.Booking
	req := model.BookingRequest{EventID: eventID}
	if err := c.do(ctx, http.MethodPost, "/bookings", req, true, &out); err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// DeleteBooking removes one of the current user's bookings.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), nil, true, nil)
}

// Login authenticates and returns the token plus user info.
func (c *Client) Login(ctx context.Context, email, password string) (model.AuthResponse, error) {
	var out model.AuthResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, false, &out); err != nil {
		return model.AuthResponse{}, err
	}
	return out, nil
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, false, &out); err != nil {
		return model.AuthResponse{}, err
	}
	return out, nil
}

// ListUsers fetches all users. Admin token required.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PromoteUser raises a user to the admin role. Admin token required.
func (c *Client) PromoteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/auth/promote/"+url.PathEscape(id), nil, true, nil)
}

// UploadImage uploads an image as multipart form data and returns the new
// image identifier. Admin token required.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: "preparing upload failed"}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &Error{Kind: KindNetwork, Message: "reading image failed"}
	}
	if err := mw.Close(); err != nil {
		return "", &Error{Kind: KindNetwork, Message: "preparing upload failed"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &buf)
	if err != nil {
		return "", &Error{Kind: KindNetwork}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.attachToken(req)

	var out model.UploadResponse
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.ImageID, nil
}

// do issues a JSON request and decodes the response into out (when out is
// non-nil). Authenticated requests read the session token at dispatch.
func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		c.attachToken(req)
	}

	return c.send(req, out)
}

func (c *Client) attachToken(req *http.Request) {
	if s := c.sessions.Get(); s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", req.Method, "url", req.URL.Path, "error", err)
		return &Error{Kind: KindNetwork}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
		c.logger.Warn("request rejected",
			"method", req.Method, "url", req.URL.Path,
			"status", resp.StatusCode, "msg", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("decoding response failed", "method", req.Method, "url", req.URL.Path, "error", err)
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed server response"}
	}
	return nil
}

// serverMessage pulls the human-readable message out of an error body.
// The API uses {"msg": ...}; {"error": ...} is accepted for compatibility.
func serverMessage(r io.Reader) string {
	var body struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Msg != "" {
		return body.Msg
	}
	return body.Error
}
