// Package client talks to the lineup HTTP API.
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/okian/bestxi/internal/domain/types"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "http " + http.StatusText(e.Status) + ": " + e.Message
	}
	return e.Code + ": " + e.Message
}

// Client calls the lineup API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option applies a configuration option to a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a client for the service at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitTeams posts the two team codes as a form and returns the lineup.
func (c *Client) SubmitTeams(ctx context.Context, team1, team2 string) (types.Lineup, error) {
	form := url.Values{"team1": {team1}, "team2": {team2}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit_teams",
		strings.NewReader(form.Encode()))
	if err != nil {
		return types.Lineup{}, errors.Wrap(err, "build submit request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var lineup types.Lineup
	if err := c.do(req, &lineup); err != nil {
		return types.Lineup{}, errors.Wrapf(err, "submit %s vs %s", team1, team2)
	}
	return lineup, nil
}

// Teams fetches the configured rosters.
func (c *Client) Teams(ctx context.Context) (types.Teams, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/teams", nil)
	if err != nil {
		return types.Teams{}, errors.Wrap(err, "build teams request")
	}

	var teams types.Teams
	if err := c.do(req, &teams); err != nil {
		return types.Teams{}, errors.Wrap(err, "list teams")
	}
	return teams, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if sonic.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
