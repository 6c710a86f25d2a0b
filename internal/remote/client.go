package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/cornhole/internal/model"
)

// Config holds settings for the remote record store client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns default remote client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://localhost:7157",
		Timeout: 30 * time.Second,
	}
}

// StatusError is returned when the record store answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets callers match every status failure with model.ErrRemoteRejected
func (e *StatusError) Unwrap() error {
	return model.ErrRemoteRejected
}

// Client is an HTTP client for the remote record store
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new record store client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// LoginResult is the profile and signed token returned by a login
type LoginResult struct {
	ID    model.PlayerID `json:"id"`
	Name  string         `json:"name"`
	Board string         `json:"board"`
	Token string         `json:"token"`
}

// Credential converts the login result into a cacheable credential
func (r LoginResult) Credential() model.Credential {
	return model.Credential{
		Token: r.Token,
		Profile: model.Profile{
			ID:    r.ID,
			Name:  r.Name,
			Board: r.Board,
		},
	}
}

type loginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type boardRequest struct {
	Board string `json:"board"`
}

// uploadRequest carries the game list as a JSON-encoded string
type uploadRequest struct {
	Data string `json:"data"`
}

// Health checks the record store is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

// Roster fetches every player known to the record store
func (c *Client) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	var roster []model.RosterEntry
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &roster, nil); err != nil {
		return nil, err
	}
	if roster == nil {
		roster = []model.RosterEntry{}
	}
	return roster, nil
}

// Login exchanges a name and passcode for a profile and signed token
func (c *Client) Login(ctx context.Context, name, passcode string) (*LoginResult, error) {
	var result LoginResult
	req := loginRequest{Name: name, Passcode: passcode}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateBoard changes a player's preferred board
func (c *Client) UpdateBoard(ctx context.Context, id model.PlayerID, board string) error {
	path := "/api/users/" + url.PathEscape(string(id)) + "/board"
	return c.do(ctx, http.MethodPut, path, boardRequest{Board: board}, nil, nil)
}

// UploadGames submits finished games and returns the subset the store accepted.
// Each call carries a fresh idempotency key.
func (c *Client) UploadGames(ctx context.Context, games []model.GameRecord) ([]model.GameRecord, error) {
	data, err := json.Marshal(games)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal games: %w", err)
	}

	headers := map[string]string{
		"Idempotency-Key": uuid.NewString(),
	}

	var accepted []model.GameRecord
	if err := c.do(ctx, http.MethodPost, "/api/Update/DB", uploadRequest{Data: string(data)}, &accepted, headers); err != nil {
		return nil, err
	}
	if accepted == nil {
		accepted = []model.GameRecord{}
	}
	return accepted, nil
}

// do performs an HTTP request
func (c *Client) do(ctx context.Context, method, path string, body, result any, headers map[string]string) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", model.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: failed to parse response: %w", model.ErrRemoteRejected, err)
		}
	}

	return nil
}
