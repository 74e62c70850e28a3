package bgg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/preston-bernstein/bglist/internal/logging"
	"github.com/preston-bernstein/bglist/internal/metrics"
	"github.com/preston-bernstein/bglist/internal/providers"
)

// Config controls how the BGG client reaches the XML API.
type Config struct {
	// BaseURL overrides the API root; tests point it at a stub.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client fetches the owned-games collection export from the BGG XML API.
type Client struct {
	baseURL    string
	username   string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

var _ providers.CollectionProvider = (*Client)(nil)

// NewClient constructs a BGG client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		username:   collectionUsername,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		retryDelay: acceptedRetryDelay,
		sleep:      sleepContext,
		now:        time.Now,
	}
}

// FetchCollection retrieves the collection export and returns the raw XML body.
// A 202 means BGG is still building the export: the client waits once and asks again,
// then returns that second body whatever its status.
func (c *Client) FetchCollection(ctx context.Context) ([]byte, error) {
	c.log(ctx, slog.LevelInfo, "calling BGG")

	resp, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusAccepted {
		discard(resp.Body)
		c.log(ctx, slog.LevelInfo, "awaiting BGG readiness", logging.FieldDelay, c.retryDelay)
		c.metrics.RecordAccepted(providerName, c.retryDelay)

		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return nil, err
		}
		if resp, err = c.get(ctx); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bgg: read collection: %w", err)
	}
	c.log(ctx, slog.LevelInfo, "response received", logging.FieldStatusCode, resp.StatusCode)
	return body, nil
}

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	req, err := c.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	elapsed := c.now().Sub(start)
	if err != nil {
		c.metrics.RecordProviderAttempt(providerName, 0, elapsed, err)
		return nil, fmt.Errorf("bgg: get collection: %w", err)
	}
	c.metrics.RecordProviderAttempt(providerName, resp.StatusCode, elapsed, nil)
	c.log(ctx, slog.LevelDebug, "collection request done",
		logging.FieldURL, req.URL.String(),
		logging.FieldStatusCode, resp.StatusCode,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	endpoint := c.baseURL + "/collection/" + url.PathEscape(c.username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set(ownedOnlyParam, "1")
	req.URL.RawQuery = q.Encode()
	return req, nil
}

func (c *Client) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	providers.Log(ctx, c.logger, level, providerName, msg, args...)
}
