package mee6

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leaderboard-payouts/core/reconcile"
)

// ErrFetch marks every failure to obtain a leaderboard.
var ErrFetch = errors.New("leaderboard fetch failed")

// player is one entry of the leaderboard payload. Other fields are ignored.
type player struct {
	Username string `json:"username"`
	Level    int64  `json:"level"`
}

type leaderboardResponse struct {
	Players []player `json:"players"`
}

// Client fetches leaderboards over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a leaderboard client based on the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

// URL returns the leaderboard URL for a source.
func (c *Client) URL(sourceID string) string {
	return c.baseURL + "/" + url.PathEscape(sourceID)
}

// Leaderboard issues one GET for the source and returns its players in API order.
// A payload without a players list yields an empty slice and no error.
func (c *Client) Leaderboard(ctx context.Context, sourceID string) ([]reconcile.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(sourceID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %w", ErrFetch, sourceID, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %w", ErrFetch, sourceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: source %s: unexpected status %d", ErrFetch, sourceID, resp.StatusCode)
	}

	var payload leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: source %s: decode body: %w", ErrFetch, sourceID, err)
	}

	records := make([]reconcile.Record, 0, len(payload.Players))
	for _, p := range payload.Players {
		records = append(records, reconcile.Record{Identifier: p.Username, Level: p.Level})
	}
	return records, nil
}
