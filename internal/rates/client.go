// Package rates is the client for the public Frankfurter exchange-rate API.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Frankfurter API.
const DefaultBaseURL = "https://api.frankfurter.dev/v1"

// Config holds rate client configuration.
type Config struct {
	HTTPClient        *http.Client
	Now               func() time.Time
	BaseURL           string
	Retry             common.RetryOptions
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the client defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           15 * time.Second,
		RequestsPerSecond: 5,
		Burst:             4,
		Retry: common.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 250 * time.Millisecond,
			MaxDelay:     2 * time.Second,
		},
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: rate service base URL is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: invalid rate service base URL %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client talks to the rate service. It holds no per-call state; every
// method is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    *url.URL
	now        func() time.Time
	retry      common.RetryOptions
}

// NewClient creates a new rate client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultConfig().Timeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		baseURL:    base,
		now:        now,
		retry:      cfg.Retry,
	}, nil
}

// Currencies fetches the currency catalog.
func (c *Client) Currencies(ctx context.Context) (model.Catalog, error) {
	var catalog model.Catalog
	if err := c.getJSON(ctx, "currencies", nil, nil, &catalog); err != nil {
		return model.Catalog{}, err
	}

	slog.Debug("Loaded currency catalog", "count", catalog.Len())
	return catalog, nil
}

// Convert returns amount of pair.From expressed in pair.To.
func (c *Client) Convert(ctx context.Context, pair model.Pair, amount float64) (float64, error) {
	query := url.Values{}
	query.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	return c.latest(ctx, pair, query)
}

// Rate returns units of pair.To per one unit of pair.From.
func (c *Client) Rate(ctx context.Context, pair model.Pair) (float64, error) {
	return c.latest(ctx, pair, url.Values{})
}

// SettledFunc observes one popular pair as soon as it settles. It may be
// called concurrently from several goroutines.
type SettledFunc func(model.PairRate)

// PopularRates fetches every pair concurrently and waits for all of them.
// A failing pair is reported in its own slot and never aborts the others.
func (c *Client) PopularRates(ctx context.Context, pairs []model.Pair, onSettled ...SettledFunc) []model.PairRate {
	results := make([]model.PairRate, len(pairs))

	var g errgroup.Group
	for i, pair := range pairs {
		g.Go(func() error {
			r, err := c.Rate(ctx, pair)
			if err != nil {
				slog.Warn("Popular rate unavailable", "pair", pair.String(), "error", err)
			}
			results[i] = model.PairRate{Pair: pair, Rate: r, Err: err}
			for _, fn := range onSettled {
				fn(results[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// History fetches the seven days ending yesterday for pair.
func (c *Client) History(ctx context.Context, pair model.Pair) (model.Series, error) {
	window := model.TrailingWeek(c.now())

	query := url.Values{}
	query.Set("from", pair.From)
	query.Set("to", pair.To)

	unavailable := func(code int) error {
		return unavailableError(code, historyUnavailable(pair.From, pair.To))
	}

	var resp historicalResponse
	if err := c.getJSON(ctx, window.String(), query, unavailable, &resp); err != nil {
		return model.Series{}, err
	}

	series := model.Series{
		Pair:        pair,
		RatesByDate: make(map[string]float64, len(resp.Rates)),
	}
	for date, byCode := range resp.Rates {
		v, ok := byCode[pair.To]
		if !ok || !validRate(v) {
			continue
		}
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			slog.Debug("Skipping malformed history date", "date", date)
			continue
		}
		series.RatesByDate[date] = v
		series.DatesAscending = append(series.DatesAscending, date)
	}
	sort.Strings(series.DatesAscending)

	if series.Len() == 0 {
		return model.Series{}, noHistoryError(pair.From, pair.To)
	}

	return series, nil
}

func (c *Client) latest(ctx context.Context, pair model.Pair, query url.Values) (float64, error) {
	query.Set("from", pair.From)
	query.Set("to", pair.To)

	unavailable := func(code int) error {
		return unavailableError(code, spotUnavailable(pair.From, pair.To))
	}

	var resp latestResponse
	if err := c.getJSON(ctx, "latest", query, unavailable, &resp); err != nil {
		return 0, err
	}

	v, ok := resp.Rates[pair.To]
	if !ok || !validRate(v) {
		return 0, unavailableError(0, spotUnavailable(pair.From, pair.To))
	}
	return v, nil
}

// getJSON performs a paced, retried GET and decodes the body into out.
// unavailable builds the error for 404/422; nil treats them as plain HTTP errors.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, unavailable func(int) error, out any) error {
	err := common.WithRetry(ctx, func() error {
		return c.doGet(ctx, endpoint, query, unavailable, out)
	}, c.retry)

	var retryable *common.RetryableError
	if errors.As(err, &retryable) && !errors.Is(err, common.ErrMaxRetries) {
		return retryable.Err
	}
	return err
}

func (c *Client) doGet(ctx context.Context, endpoint string, query url.Values, unavailable func(int) error, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Kind: common.ErrNetwork, Message: fmt.Sprintf("request canceled: %v", err)}
	}

	u := c.baseURL.JoinPath(endpoint)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &APIError{Kind: common.ErrNetwork, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting rate service", "endpoint", endpoint, "query", u.RawQuery)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       &APIError{Kind: common.ErrNetwork, Message: fmt.Sprintf("failed to reach rate service: %v", err)},
			Retryable: ctx.Err() == nil,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		switch {
		case isUnavailableStatus(resp.StatusCode) && unavailable != nil:
			return unavailable(resp.StatusCode)
		case isTransientStatus(resp.StatusCode):
			return &common.RetryableError{
				Err:       statusError(resp.StatusCode),
				After:     retryAfter(resp.Header.Get("Retry-After")),
				Retryable: true,
			}
		default:
			return statusError(resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Kind:       common.ErrNetwork,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response from rate service: %v", err),
		}
	}

	return nil
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h string) time.Duration {
	secs, err := strconv.Atoi(h)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func validRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
