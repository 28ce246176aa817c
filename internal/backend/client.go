package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotelclient/internal/domain"
	"hotelclient/internal/session"
)

// APIError is a normalized non-2xx backend response: the HTTP status plus
// the error message field from the body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// Message extracts the backend's error message for display, falling back to
// the view's own wording for transport and decoding failures.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is the single point of HTTP access to the backend REST API. It
// attaches the decrypted bearer token to protected requests and normalizes
// failures; it never retries, caches or queues.
type Client struct {
	baseURL          string
	http             *http.Client
	sessions         *session.Store
	onSessionExpired func()
}

type ClientOption func(*Client)

// WithSessionExpiredHook installs the callback invoked when a booking
// request comes back 401 with a missing or locally-expired token.
func WithSessionExpiredHook(hook func()) ClientOption {
	return func(c *Client) {
		c.onSessionExpired = hook
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func NewClient(baseURL string, timeout time.Duration, sessions *session.Store, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// envelope is the backend's common response body. Only the fields relevant
// to a given endpoint are populated.
type envelope struct {
	Status      int             `json:"status"`
	Message     string          `json:"message"`
	Token       string          `json:"token"`
	Role        domain.Role     `json:"role"`
	User        *domain.User    `json:"user"`
	Room        *domain.Room    `json:"room"`
	RoomList    []domain.Room   `json:"roomList"`
	Booking     *domain.Booking  `json:"booking"`
	BookingList []domain.Booking `json:"bookingList"`
}

// LoginResult carries the session material issued by the backend.
type LoginResult struct {
	Token string
	Role  domain.Role
}

// BookingResult preserves the raw response shape so the booking view can
// validate it before navigating to payment.
type BookingResult struct {
	Status  int
	Booking *domain.Booking
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, nil, false)
	if err != nil {
		log.Printf("backend: register: %v", err)
	}
	return err
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &env, false); err != nil {
		log.Printf("backend: login: %v", err)
		return nil, err
	}
	return &LoginResult{Token: env.Token, Role: env.Role}, nil
}

func (c *Client) MyProfile(ctx context.Context) (*domain.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/users/account", nil, nil, &env, true); err != nil {
		log.Printf("backend: fetch profile: %v", err)
		return nil, err
	}
	return env.User, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/users/bookings", nil, nil, &env, true); err != nil {
		log.Printf("backend: fetch bookings: %v", err)
		return nil, err
	}
	return env.BookingList, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/users/delete", nil, nil, nil, true)
	if err != nil {
		log.Printf("backend: delete account: %v", err)
	}
	return err
}

func (c *Client) AddRoom(ctx context.Context, room domain.Room) error {
	err := c.do(ctx, http.MethodPost, "/rooms/add", nil, room, nil, true)
	if err != nil {
		log.Printf("backend: add room: %v", err)
	}
	return err
}

func (c *Client) UpdateRoom(ctx context.Context, room domain.Room) error {
	err := c.do(ctx, http.MethodPut, "/rooms/update", nil, room, nil, true)
	if err != nil {
		log.Printf("backend: update room: %v", err)
	}
	return err
}

func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	err := c.do(ctx, http.MethodDelete, "/rooms/delete/"+roomID, nil, nil, nil, true)
	if err != nil {
		log.Printf("backend: delete room: %v", err)
	}
	return err
}

// AvailableRooms forwards the filter untouched; availability is decided by
// the backend.
func (c *Client) AvailableRooms(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	query := url.Values{}
	query.Set("checkInDate", filter.CheckInDate)
	query.Set("checkOutDate", filter.CheckOutDate)
	query.Set("roomType", filter.RoomType)

	var env envelope
	if err := c.do(ctx, http.MethodGet, "/rooms/available", query, nil, &env, false); err != nil {
		log.Printf("backend: fetch available rooms: %v", err)
		return nil, err
	}
	return env.RoomList, nil
}

func (c *Client) RoomTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.do(ctx, http.MethodGet, "/rooms/types", nil, nil, &types, false); err != nil {
		log.Printf("backend: fetch room types: %v", err)
		return nil, err
	}
	return types, nil
}

func (c *Client) AllRooms(ctx context.Context) ([]domain.Room, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/rooms/all", nil, nil, &env, false); err != nil {
		log.Printf("backend: fetch all rooms: %v", err)
		return nil, err
	}
	return env.RoomList, nil
}

func (c *Client) RoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/rooms/"+roomID, nil, nil, &env, false); err != nil {
		log.Printf("backend: fetch room %s: %v", roomID, err)
		return nil, err
	}
	return env.Room, nil
}

// BookRoom creates a booking. This is the one place session invalidation is
// triggered reactively: a 401 combined with a missing or locally-expired
// token clears the session and fires the session-expired hook. A 401 with a
// live token is surfaced like any other error.
func (c *Client) BookRoom(ctx context.Context, req domain.BookingRequest) (*BookingResult, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &env, true); err != nil {
		log.Printf("backend: create booking: %v", err)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			token, present := c.sessions.Token(ctx)
			if !present || session.TokenExpired(token) {
				if clearErr := c.sessions.ClearSession(ctx); clearErr != nil {
					log.Printf("backend: clear session: %v", clearErr)
				}
				if c.onSessionExpired != nil {
					c.onSessionExpired()
				}
			}
		}
		return nil, err
	}
	return &BookingResult{Status: env.Status, Booking: env.Booking}, nil
}

func (c *Client) AllBookings(ctx context.Context) ([]domain.Booking, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/bookings/all", nil, nil, &env, true); err != nil {
		log.Printf("backend: fetch all bookings: %v", err)
		return nil, err
	}
	return env.BookingList, nil
}

func (c *Client) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	err := c.do(ctx, http.MethodPut, "/bookings/update", nil, booking, nil, true)
	if err != nil {
		log.Printf("backend: update booking: %v", err)
	}
	return err
}

func (c *Client) BookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/bookings/"+reference, nil, nil, &env, true); err != nil {
		log.Printf("backend: fetch booking %s: %v", reference, err)
		return nil, err
	}
	return env.Booking, nil
}

type createOrderRequest struct {
	BookingReference string  `json:"bookingReference"`
	Amount           float64 `json:"amount"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
	Key     string `json:"key"`
}

func (c *Client) CreatePaymentOrder(ctx context.Context, reference string, amount float64) (*domain.PaymentOrder, error) {
	req := createOrderRequest{BookingReference: reference, Amount: amount}
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/payments/create-order", nil, req, &resp, true); err != nil {
		log.Printf("backend: create payment order: %v", err)
		return nil, err
	}
	return &domain.PaymentOrder{OrderID: resp.OrderID, Key: resp.Key}, nil
}

func (c *Client) VerifyPayment(ctx context.Context, attempt domain.PaymentAttempt) error {
	err := c.do(ctx, http.MethodPost, "/payments/verify", nil, attempt, nil, true)
	if err != nil {
		log.Printf("backend: verify payment: %v", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, ok := c.sessions.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			log.Printf("backend: no token found in storage")
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(status int, body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return http.StatusText(status)
}
