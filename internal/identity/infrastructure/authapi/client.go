// Package authapi is the HTTP client for the external auth backend.
// The wire contract is fixed: register/login return a bearer token,
// /me reads and updates the profile, and error bodies carry a
// "detail" field in one of two shapes.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/followthru/followthru/internal/identity/domain"
)

const requestTimeout = 30 * time.Second

// Client talks to the auth backend. All requests share one circuit
// breaker: when the backend is down, calls fail fast instead of each
// waiting out the timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	logger     *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "authapi",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		breaker:    gobreaker.NewCircuitBreaker[*http.Response](settings),
		logger:     logger,
	}
}

// Session is the register/login response: the user plus their token.
type Session struct {
	User        domain.User `json:"user"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
}

// ProfilePatch is the subset of profile fields to change. Nil fields
// are omitted from the request.
type ProfilePatch struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.errorFrom(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, &domain.TransportError{Op: "decode register response", Err: err}
	}
	return &session, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFrom(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, &domain.TransportError{Op: "decode login response", Err: err}
	}
	return &session, nil
}

// Me fetches the profile for the token. A 401 means the token is dead.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFrom(resp)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &domain.TransportError{Op: "decode profile response", Err: err}
	}
	return &user, nil
}

// UpdateMe patches the profile. A 401 here is ambiguous: it can mean a
// dead token or a wrong current password. The error detail decides:
// password-related wording keeps the session and reports
// ErrWrongPassword; anything else is ErrNotAuthenticated.
func (c *Client) UpdateMe(ctx context.Context, token string, patch ProfilePatch) (*domain.User, error) {
	resp, err := c.do(ctx, http.MethodPatch, "/api/auth/me", token, patch)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		detail := readDetail(resp.Body)
		if isPasswordMessage(detail) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWrongPassword, detail)
		}
		return nil, domain.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFrom(resp)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &domain.TransportError{Op: "decode profile response", Err: err}
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
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

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, &domain.TransportError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// errorFrom turns a non-2xx response into an APIError with the best
// message the body offers.
func (c *Client) errorFrom(resp *http.Response) error {
	return &domain.APIError{
		Status:  resp.StatusCode,
		Message: readDetail(resp.Body),
	}
}

// errorBody covers both detail shapes the backend emits:
// {"detail": "..."} and {"detail": [{"msg": "..."}]}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type errorItem struct {
	Msg string `json:"msg"`
}

func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var items []errorItem
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// isPasswordMessage reports whether an error detail is about the
// current password rather than the bearer token.
func isPasswordMessage(detail string) bool {
	lower := strings.ToLower(detail)
	return strings.Contains(lower, "current_password") || strings.Contains(lower, "password")
}
