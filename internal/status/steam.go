// Package status polls the Steam Web API for the player's current game and
// reports activity updates to the assistant.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	squireerrors "squire/internal/errors"
	"squire/internal/httpclient"
	"squire/internal/logging"
)

const (
	// DefaultBaseURL is the Steam Web API endpoint root.
	DefaultBaseURL = "https://api.steampowered.com"

	// DefaultFetchTimeout bounds one GetPlayerSummaries exchange so a poll
	// cycle can never hang.
	DefaultFetchTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20

	// Degraded activity labels reported when a fetch fails.
	LabelUnreachable    = "Steam API unreachable"
	LabelCredentialsBad = "API error - check credentials"
)

// Credentials identify the Steam account to poll.
type Credentials struct {
	APIKey  string
	SteamID string
}

// Present reports whether both fields are set.
func (c Credentials) Present() bool {
	return c.APIKey != "" && c.SteamID != ""
}

// PlayerStatus is the interesting slice of a GetPlayerSummaries response.
// Game is empty when the player is not in a game.
type PlayerStatus struct {
	Game string
}

// Client fetches player status from the Steam Web API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint root, used in tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a Steam client with a bounded timeout and a circuit
// breaker on the transport.
func NewClient(logger logging.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: httpclient.NewWithCircuitBreaker(DefaultFetchTimeout, "steam-api"),
		baseURL:    DefaultBaseURL,
		logger:     logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			GameExtraInfo string `json:"gameextrainfo"`
		} `json:"players"`
	} `json:"response"`
}

// Fetch calls GetPlayerSummaries for the configured account. Failures come
// back as degraded errors carrying the activity label to display while the
// service is unavailable.
func (c *Client) Fetch(ctx context.Context, creds Credentials) (PlayerStatus, error) {
	endpoint := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v0002/?key=%s&steamids=%s",
		c.baseURL, url.QueryEscape(creds.APIKey), url.QueryEscape(creds.SteamID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PlayerStatus{}, fmt.Errorf("build steam request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if squireerrors.IsDegraded(err) {
			// Circuit breaker is open; keep its message, supply our label.
			return PlayerStatus{}, squireerrors.NewDegradedError(err, err.Error(), LabelUnreachable)
		}
		return PlayerStatus{}, squireerrors.NewDegradedError(
			fmt.Errorf("steam request: %w", err), "", LabelUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		label := LabelUnreachable
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			label = LabelCredentialsBad
		}
		return PlayerStatus{}, squireerrors.NewDegradedError(
			fmt.Errorf("steam api status %d", resp.StatusCode), "", label)
	}

	body, err := httpclient.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return PlayerStatus{}, squireerrors.NewDegradedError(
			fmt.Errorf("read steam response: %w", err), "", LabelUnreachable)
	}

	var payload playerSummariesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return PlayerStatus{}, squireerrors.NewDegradedError(
			fmt.Errorf("parse steam response: %w", err), "", LabelCredentialsBad)
	}
	if len(payload.Response.Players) == 0 {
		// A 200 with no players almost always means wrong SteamID or key.
		return PlayerStatus{}, squireerrors.NewDegradedError(
			fmt.Errorf("steam response contained no players"), "", LabelCredentialsBad)
	}

	return PlayerStatus{Game: payload.Response.Players[0].GameExtraInfo}, nil
}
