package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fhe-dice/internal/config"
)

type Options struct {
	PlayTimeout  time.Duration
	FetchTimeout time.Duration
}

// Client talks to the game server. It holds no mutable state, so every
// method is safe to call concurrently with any other.
type Client struct {
	baseURL string
	http    *HTTPClient
	opts    Options
}

func NewClient(baseURL string, hc *HTTPClient, opts Options) *Client {
	if hc == nil {
		hc = NewHTTPClient()
	}
	if opts.PlayTimeout <= 0 {
		opts.PlayTimeout = 15 * time.Second
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
		opts:    opts,
	}
}

func NewClientFromConfig(cfg config.ClientConfig) *Client {
	return NewClient(cfg.BackendURL, NewHTTPClient(), Options{
		PlayTimeout:  cfg.PlayTimeout,
		FetchTimeout: cfg.FetchTimeout,
	})
}

// Play submits one roll. The call is bounded by PlayTimeout; expiry surfaces
// as ErrBackendUnreachable.
func (c *Client) Play(ctx context.Context, req PlayRequest) (*GameResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.PlayTimeout)
	defer cancel()

	var out GameResult
	if err := c.http.PostJSON(ctx, c.endpoint("/api/play"), req, &out); err != nil {
		return nil, err
	}
	if err := out.validate(req.NumDice); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	var out Stats
	if err := c.http.GetJSON(ctx, c.endpoint("/api/stats"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the most recent games, newest first, capped at limit.
func (c *Client) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var out historyResponse
	if err := c.http.GetJSON(ctx, c.endpoint("/api/games")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	games := out.Games
	if games == nil {
		games = []HistoryEntry{}
	}
	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	var out Health
	if err := c.http.GetJSON(ctx, c.endpoint("/api/health"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var out leaderboardResponse
	if err := c.http.GetJSON(ctx, c.endpoint("/api/leaderboard")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if out.Leaderboard == nil {
		return []LeaderboardEntry{}, nil
	}
	return out.Leaderboard, nil
}

func (c *Client) Game(ctx context.Context, gameID string) (*HistoryEntry, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	var out HistoryEntry
	if err := c.http.GetJSON(ctx, c.endpoint("/api/game/"+url.PathEscape(gameID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) User(ctx context.Context, address string) (*User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	var out User
	if err := c.http.GetJSON(ctx, c.endpoint("/api/user/"+url.PathEscape(address)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}
