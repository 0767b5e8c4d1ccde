package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tastybites-web/internal/domain"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a business error reported by the backend: the HTTP status
// plus whatever message the response body carried.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthResult is the outcome of an auth endpoint call. SetCookie holds the
// backend's Set-Cookie headers so the caller can pass them on to the browser.
type AuthResult struct {
	Message   string
	SetCookie []string
}

// Client talks to the external backend. Every credentialed call forwards
// the browser's Cookie header untouched; the backend is authoritative for
// session validity.
type Client struct {
	baseURL string
	client  HTTPClient
}

func NewClient(baseURL string, client HTTPClient) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{baseURL: baseURL, client: client}
}

// messageBody covers the backend's two reply conventions: {"message": ...}
// on success and {"error": ...} on failure.
type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, cookie string, payload, out any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode >= 400 {
		var mb messageBody
		_ = json.Unmarshal(raw, &mb)
		msg := mb.Error
		if msg == "" {
			msg = mb.Message
		}
		return resp, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode %s response: %w", path, err)
		}
	}

	return resp, nil
}

// message runs a call whose only interesting result is the backend's text.
func (c *Client) message(ctx context.Context, method, path, cookie string, payload any) (string, error) {
	var mb messageBody
	if _, err := c.do(ctx, method, path, cookie, payload, &mb); err != nil {
		return "", err
	}
	return mb.Message, nil
}

// CheckSession is the single place the backend's loose session JSON is
// normalized: it has been seen answering with isLoggedIn plus either
// user_id or userId depending on the route.
func (c *Client) CheckSession(ctx context.Context, cookie string) (domain.SessionState, error) {
	var raw struct {
		IsLoggedIn bool   `json:"isLoggedIn"`
		Email      string `json:"email"`
		UserID     int    `json:"user_id"`
		UserIDAlt  int    `json:"userId"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/check-session", cookie, nil, &raw); err != nil {
		return domain.SessionState{}, err
	}

	state := domain.SessionState{Authenticated: raw.IsLoggedIn}
	if state.Authenticated {
		state.Email = raw.Email
		state.UserID = raw.UserID
		if state.UserID == 0 {
			state.UserID = raw.UserIDAlt
		}
	}
	return state, nil
}

func (c *Client) authCall(ctx context.Context, path string, payload any) (AuthResult, error) {
	var mb messageBody
	resp, err := c.do(ctx, http.MethodPost, path, "", payload, &mb)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Message:   mb.Message,
		SetCookie: resp.Header.Values("Set-Cookie"),
	}, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (AuthResult, error) {
	return c.authCall(ctx, "/login", creds)
}

func (c *Client) Signup(ctx context.Context, s domain.Signup) (AuthResult, error) {
	return c.authCall(ctx, "/signup", s)
}

func (c *Client) Logout(ctx context.Context, cookie string) (AuthResult, error) {
	var mb messageBody
	resp, err := c.do(ctx, http.MethodPost, "/logout", cookie, nil, &mb)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Message:   mb.Message,
		SetCookie: resp.Header.Values("Set-Cookie"),
	}, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	return c.message(ctx, http.MethodPost, "/forgot_password", "", payload)
}

func (c *Client) ResetPassword(ctx context.Context, reset domain.PasswordReset) (string, error) {
	return c.message(ctx, http.MethodPost, "/reset_password", "", reset)
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if _, err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Menu(ctx context.Context) ([]domain.Product, error) {
	var items []domain.Product
	if _, err := c.do(ctx, http.MethodGet, "/menu", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Contact(ctx context.Context, msg domain.ContactMessage) (string, error) {
	return c.message(ctx, http.MethodPost, "/contact", "", msg)
}

func (c *Client) User(ctx context.Context, cookie string) (domain.User, error) {
	var user domain.User
	if _, err := c.do(ctx, http.MethodGet, "/api/user", cookie, nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, cookie string, update domain.UserUpdate) (string, error) {
	return c.message(ctx, http.MethodPut, "/api/user/update", cookie, update)
}

func (c *Client) CreateOrder(ctx context.Context, cookie string, sub domain.OrderSubmission) (string, error) {
	return c.message(ctx, http.MethodPost, "/order", cookie, sub)
}

func (c *Client) OrderHistory(ctx context.Context, cookie string) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	if _, err := c.do(ctx, http.MethodGet, "/order-history", cookie, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) SubmitRating(ctx context.Context, cookie string, rating domain.Rating) (string, error) {
	return c.message(ctx, http.MethodPost, "/submit-rating", cookie, rating)
}

func (c *Client) SchedulePickup(ctx context.Context, cookie string, req domain.PickupRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/pickup", cookie, req)
}

func (c *Client) CreateReservation(ctx context.Context, cookie string, req domain.ReservationRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/reservations", cookie, req)
}
