// Package nhl provides the HTTP client for the league's public data feeds:
// the stats API (schedules, live game feeds), the shift-chart feed, and the
// HTML shift reports.
//
// All calls are rate limited via a token bucket and retried with
// exponential backoff; 4xx responses are permanent failures and are not
// retried.
package nhl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/rinkstat/rinkstat-data/internal/onice"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
)

// Default endpoints. The report base has no https variant.
const (
	DefaultStatsBase  = "https://statsapi.web.nhl.com/api/v1"
	DefaultChartBase  = "http://www.nhl.com/stats/rest"
	DefaultReportBase = "http://www.nhl.com/scores/htmlreports"
)

// Client is the shared HTTP client for all league endpoints.
type Client struct {
	httpClient *http.Client
	statsBase  string
	chartBase  string
	reportBase string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries uint64
	logger     *slog.Logger
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	StatsBase         string
	ChartBase         string
	ReportBase        string
	UserAgent         string
	RequestsPerMinute int
	MaxRetries        int
	Timeout           time.Duration
}

// NewClient creates a rate-limited league client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.StatsBase == "" {
		opts.StatsBase = DefaultStatsBase
	}
	if opts.ChartBase == "" {
		opts.ChartBase = DefaultChartBase
	}
	if opts.ReportBase == "" {
		opts.ReportBase = DefaultReportBase
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "rinkstat-data/1.0 (github.com/rinkstat/rinkstat-data)"
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 30
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	rps := float64(opts.RequestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		statsBase:  opts.StatsBase,
		chartBase:  opts.ChartBase,
		reportBase: opts.ReportBase,
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: uint64(opts.MaxRetries),
		logger:     logger,
	}
}

// Schedule fetches the raw schedule feed covering one season.
func (c *Client) Schedule(ctx context.Context, season int) ([]byte, error) {
	start, end := schedule.SeasonWindow(season)
	url := fmt.Sprintf("%s/schedule?startDate=%s&endDate=%s", c.statsBase, start, end)
	return c.get(ctx, url)
}

// GameFeed fetches the raw live feed (play-by-play) for one game.
func (c *Client) GameFeed(ctx context.Context, season, game int) ([]byte, error) {
	url := fmt.Sprintf("%s/game/%d/feed/live", c.statsBase, gamePk(season, game))
	return c.get(ctx, url)
}

// ShiftChart fetches the raw shift-chart JSON for one game.
func (c *Client) ShiftChart(ctx context.Context, season, game int) ([]byte, error) {
	url := fmt.Sprintf("%s/shiftcharts?cayenneExp=gameId=%d", c.chartBase, gamePk(season, game))
	return c.get(ctx, url)
}

// ShiftReport fetches the HTML shift report for one side of a game, the
// fallback source for games the shift-chart feed does not cover.
func (c *Client) ShiftReport(ctx context.Context, season, game int, side onice.Side) ([]byte, error) {
	prefix := "TH"
	if side == onice.Away {
		prefix = "TV"
	}
	url := fmt.Sprintf("%s/%d%d/%s0%d.HTM", c.reportBase, season, season+1, prefix, game)
	return c.get(ctx, url)
}

// gamePk builds the league's full game identifier from season and short
// game number: (2017, 20001) -> 2017020001.
func gamePk(season, game int) int64 {
	return int64(season)*1000000 + int64(game)
}

// get performs a rate-limited GET with retries.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request %s: %w", url, err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = b
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("%s returned %d", url, resp.StatusCode))
		default:
			return fmt.Errorf("%s returned %d", url, resp.StatusCode)
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("retrying fetch", "url", url, "wait", wait.Round(time.Millisecond), "error", err)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return body, nil
}
