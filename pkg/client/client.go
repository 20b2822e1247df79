// Package client provides the core Lomography HTTP client with API key
// authentication, request budgeting, caching, retries, and error handling.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lomoapi/lomography-go/pkg/cache"
	"github.com/lomoapi/lomography-go/pkg/ratelimit"
)

// DefaultBaseURL is the public Lomography API root.
const DefaultBaseURL = "https://api.lomography.com/v1"

// Prometheus metrics for client operations.
var (
	lomoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lomo_requests_total",
		Help: "Total Lomography API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	lomoRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lomo_request_duration_seconds",
		Help:    "Lomography API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	lomoErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lomo_errors_total",
		Help: "Total Lomography API errors by class",
	}, []string{"class"})
)

var validate = validator.New()

// Client is the Lomography API HTTP client.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey authenticates every request (api_key query parameter).
	APIKey string `validate:"required"`

	// BaseURL is the API root to send requests to.
	BaseURL string `validate:"required,url"`

	// UserAgent header sent with every request.
	UserAgent string `validate:"required"`

	// Redis enables the shared response cache and request budget when set.
	// Without it the client still works, it just hits the API every time.
	Redis *redis.Client

	// RateLimit is the request allowance per RateLimitWindow.
	// Only used when Redis is set.
	RateLimit       int
	RateLimitWindow time.Duration

	// Timeout per HTTP request.
	Timeout time.Duration

	// Retry controls backoff for retriable failures.
	Retry RetryConfig
}

// DefaultConfig returns a safe default configuration for the given API key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         DefaultBaseURL,
		UserAgent:       "lomography-go/0.1.0",
		RateLimit:       ratelimit.DefaultLimit,
		RateLimitWindow: ratelimit.DefaultWindow,
		Timeout:         30 * time.Second,
		Retry:           DefaultRetryConfig(),
	}
}

// New creates a new Lomography API client.
func New(cfg Config) (*Client, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := log.With().Str("component", "lomo-client").Logger()

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}

	if cfg.Redis != nil {
		c.cache = cache.NewManager(cfg.Redis)
		c.limiter = ratelimit.NewLimiter(cfg.Redis, logger).
			WithLimit(cfg.RateLimit, cfg.RateLimitWindow)
	}

	return c, nil
}

// Do performs an HTTP request with budgeting, caching, retries, and error
// handling. This is the core request method.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		lomoRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Request budget
	if c.limiter != nil {
		allowed, err := c.limiter.Allow(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("Request budget check failed")
			return nil, fmt.Errorf("request budget check: %w", err)
		}
		if !allowed {
			c.logger.Warn().
				Str("endpoint", endpoint).
				Msg("Request blocked by budget limiter")
			lomoRequestsTotal.WithLabelValues(endpoint, "budget_blocked").Inc()
			return nil, ErrBudgetExhausted
		}
	}

	// Step 2: Cache lookup
	cacheKey := cache.Key{
		Endpoint:    endpoint,
		QueryParams: req.URL.Query(),
	}

	var cachedEntry *cache.Entry
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
		cachedEntry = entry
	}

	// Step 3: Conditional request if we hold validators
	if cachedEntry != nil && cache.ShouldMakeConditionalRequest(cachedEntry) {
		cache.AddConditionalHeaders(req, cachedEntry)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Str("etag", cachedEntry.ETag).
			Msg("Making conditional request")
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing API request")

	// Step 4: Execute with retry
	var resp *http.Response
	attempt := func() error {
		r, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
			lomoErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			lomoRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return &APIError{
				ErrorClass: ErrorClassNetwork,
				Endpoint:   endpoint,
				Message:    "transport failure",
				Err:        err,
			}
		}

		if r.StatusCode >= 400 {
			class := classifyStatus(r.StatusCode)
			lomoErrorsTotal.WithLabelValues(string(class)).Inc()
			lomoRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", r.StatusCode)).Inc()

			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", r.StatusCode).
				Str("error_class", string(class)).
				Msg("API request error")

			if shouldRetry(class) {
				r.Body.Close()
				return &APIError{
					StatusCode: r.StatusCode,
					ErrorClass: class,
					Endpoint:   endpoint,
					Message:    r.Status,
				}
			}
			// Client errors are not retried: hand the response to the caller.
		} else {
			lomoRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", r.StatusCode)).Inc()
		}

		resp = r
		return nil
	}

	if err := retryWithBackoff(ctx, c.config.Retry, c.logger, attempt, classifyError); err != nil {
		return nil, err
	}

	// Step 5: 304 Not Modified serves the cached body
	if resp.StatusCode == http.StatusNotModified && cachedEntry != nil {
		c.logger.Debug().Str("endpoint", endpoint).Msg("304 Not Modified - using cache")
		cache.NotModifiedResponses.Inc()

		if expiresStr := resp.Header.Get("Expires"); expiresStr != "" && c.cache != nil {
			if newExpires, err := http.ParseTime(expiresStr); err == nil {
				if err := c.cache.UpdateTTL(ctx, cacheKey, newExpires); err != nil {
					c.logger.Warn().Err(err).Msg("Failed to update cache TTL")
				}
			}
		}

		resp.Body.Close()
		return cache.EntryToResponse(cachedEntry), nil
	}

	// Step 6: Cache successful responses
	if resp.StatusCode == http.StatusOK && c.cache != nil {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if entry.TTL() > 0 {
			if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", endpoint).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return resp, nil
}

// Get performs a GET request to an API endpoint relative to the base URL.
// The api_key parameter is appended automatically.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	u, err := url.Parse(c.config.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("build request URL: %w", err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.config.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetJSON performs a GET request and decodes the JSON response body into v.
// Non-2xx responses become an *APIError.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	resp, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: classifyStatus(resp.StatusCode),
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	return nil
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
