package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	BaseURL = "https://api.sleeper.app/v1"

	userAgent      = "Sleeper-H2H-Updater/1.0"
	requestTimeout = 30 * time.Second
	cachePrefix    = "sleeper:"
)

// Cache stores raw response bodies. Any error from Get is treated as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client handles Sleeper API requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCache enables read-through caching of successful responses.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Sleeper API client. An empty baseURL selects the public API.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("sleeper")

	return c
}

// FetchUsers returns the members of a league.
func (c *Client) FetchUsers(ctx context.Context, leagueID string) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/users", leagueID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchRosters returns the rosters of a league.
func (c *Client) FetchRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	var rosters []Roster
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// FetchMatchups returns every roster's matchup entry for a week.
func (c *Client) FetchMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	var matchups []Matchup
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), &matchups); err != nil {
		return nil, err
	}
	return matchups, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cachePrefix+path); err == nil {
			if err := json.Unmarshal(cached, out); err == nil {
				c.logger.Debug("cache hit", zap.String("path", path))
				return nil
			}
			c.logger.Warn("discarding unreadable cache entry", zap.String("path", path))
		}
	}

	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w (body: %s)", url, err, snippet(body))
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cachePrefix+path, body, c.cacheTTL); err != nil {
			c.logger.Warn("cache write failed", zap.String("path", path), zap.Error(err))
		}
	}

	return nil
}

// fetch performs a single GET; no retries.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("url", url), zap.Error(err))
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unexpected status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	return body, nil
}

func snippet(body []byte) string {
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}
