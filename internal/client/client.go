// Package client is the embeddable counterpart of the StarWash API: it
// carries the shop terminal's session handling, role gating, navigation
// shell and dashboard polling, so any front end only has to render state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"starwash-api/internal/core/domain"
)

// RequestTimeout bounds every outbound request. A slow backend surfaces as
// ErrTimeout instead of a hung terminal.
const RequestTimeout = 10 * time.Second

var (
	ErrTimeout      = errors.New("request timed out")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Doer issues HTTP requests. *http.Client satisfies it; tests substitute
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the StarWash API
type Client struct {
	baseURL string
	doer    Doer
	timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithDoer sets the HTTP doer used for requests
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates an API client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: RequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{}
	}
	return c
}

// User is the profile the API reports for a session
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Identity is the /me response: profile plus normalized role
type Identity struct {
	User User
	Role domain.Role
}

// envelope mirrors the API's standard response shape
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	data, err := c.do(ctx, http.MethodPost, "/login", "", body)
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if payload.Token == "" {
		return "", errors.New("login response missing token")
	}
	return payload.Token, nil
}

// Me resolves the identity behind a token
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	data, err := c.do(ctx, http.MethodGet, "/me", token, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		User User   `json:"user"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}

	role, ok := domain.NormalizeRole(payload.Role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q", payload.Role)
	}
	return &Identity{User: payload.User, Role: role}, nil
}

// Logout asks the server to revoke the token. Callers treat this as
// best-effort; local state is already cleared by the time it runs.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", token, nil)
	return err
}

// AdminDashboard fetches the admin dashboard aggregates
func (c *Client) AdminDashboard(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/dashboard/admin", token, nil)
}

// StaffDashboard fetches the staff dashboard aggregates
func (c *Client) StaffDashboard(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/dashboard/staff", token, nil)
}

// Transactions fetches one window of orders for the table engine
func (c *Client) Transactions(ctx context.Context, token string, page, limit int) ([]domain.Transaction, error) {
	path := fmt.Sprintf("/api/transactions/?page=%d&limit=%d", page, limit)

	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	// List endpoints wrap rows in the pagination envelope, not the
	// standard one.
	var payload struct {
		Data []struct {
			ID            uint      `json:"id"`
			InvoiceNo     string    `json:"invoice_no"`
			CustomerName  string    `json:"customer_name"`
			ServiceType   string    `json:"service_type"`
			Loads         int       `json:"loads"`
			DetergentQty  int       `json:"detergent_qty"`
			SoftenerQty   int       `json:"softener_qty"`
			Price         float64   `json:"price"`
			AmountGiven   float64   `json:"amount_given"`
			Change        float64   `json:"change"`
			PaymentStatus string    `json:"payment_status"`
			LaundryStatus string    `json:"laundry_status"`
			PickupStatus  string    `json:"pickup_status"`
			CreatedAt     time.Time `json:"created_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode transactions response: %w", err)
	}

	out := make([]domain.Transaction, 0, len(payload.Data))
	for _, row := range payload.Data {
		out = append(out, domain.Transaction{
			ID:            row.ID,
			InvoiceNo:     row.InvoiceNo,
			CustomerName:  row.CustomerName,
			ServiceType:   row.ServiceType,
			Loads:         row.Loads,
			DetergentQty:  row.DetergentQty,
			SoftenerQty:   row.SoftenerQty,
			Price:         row.Price,
			AmountGiven:   row.AmountGiven,
			Change:        row.Change,
			PaymentStatus: domain.PaymentStatus(row.PaymentStatus),
			LaundryStatus: domain.LaundryStatus(row.LaundryStatus),
			PickupStatus:  domain.PickupStatus(row.PickupStatus),
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

// do issues a request and unwraps the standard envelope's data field
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}

	res, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%s %s: %s", method, path, env.Error)
	}
	return env.Data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send runs the request under the client timeout and folds transport
// timeouts into ErrTimeout.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	req = req.WithContext(ctx)

	res, err := c.doer.Do(req)
	if err != nil {
		cancel()
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrTimeout)
		}
		return nil, err
	}

	// Tie the cancel to body consumption
	res.Body = &cancelReadCloser{ReadCloser: res.Body, cancel: cancel}
	return res, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelReadCloser) Close() error {
	err := r.ReadCloser.Close()
	r.cancel()
	return err
}

func checkStatus(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case res.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case res.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return fmt.Errorf("%s: %s", res.Status, env.Error)
		}
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	return nil
}
