// Package client provides the request dispatcher: it executes one logical
// request with bounded retries, interpreting HTTP status codes into
// continue/retry/fail decisions.
package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/hubcrawl/github-rest-client/pkg/cache"
	"github.com/hubcrawl/github-rest-client/pkg/logging"
	"github.com/hubcrawl/github-rest-client/pkg/ratelimit"
	"github.com/hubcrawl/github-rest-client/pkg/transport"
)

// Prometheus metrics for dispatcher operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_client_requests_total",
		Help: "Total GitHub API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_client_request_duration_seconds",
		Help:    "GitHub API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_client_errors_total",
		Help: "Total GitHub API errors by class",
	}, []string{"class"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_client_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	retryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_client_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error class",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"error_class"})

	retryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_client_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// SleepFunc suspends the calling goroutine for the given duration, returning
// early with the context error if the context is cancelled. Tests inject a
// recording implementation to verify retry timing without real sleeps.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepContext is the production SleepFunc.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Config holds the dispatcher configuration.
type Config struct {
	// MaxRetries is the total number of attempts, including the first.
	MaxRetries int

	// RetryDelay is the flat backoff applied to retryable outcomes when the
	// server does not dictate one via Retry-After.
	RetryDelay time.Duration

	// Sleep suspends between attempts; nil means a context-aware real sleep.
	Sleep SleepFunc

	// Limiter, when set, gates requests on shared GitHub rate limit state
	// and feeds it from response headers.
	Limiter *ratelimit.Tracker

	// Cache, when set, enables conditional requests for GET: cached ETags
	// are sent as If-None-Match and 304 responses are served from cache.
	Cache *cache.Manager
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 5,
		RetryDelay: 60 * time.Second,
	}
}

// Dispatcher executes logical requests against a Transport with bounded
// retries. It holds no per-call state and is safe for concurrent use as long
// as the underlying Transport is.
type Dispatcher struct {
	transport transport.Transport
	config    Config
	sleep     SleepFunc
	logger    zerolog.Logger
}

// New creates a Dispatcher over the given transport.
func New(t transport.Transport, cfg Config) *Dispatcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 60 * time.Second
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Dispatcher{
		transport: t,
		config:    cfg,
		sleep:     sleep,
		logger:    logging.NewLogger("dispatcher"),
	}
}

// Do executes one logical request. Every outcome is a return value: the
// error, when non-nil, is always a *transport.APIError. Connection-level
// failures are returned immediately (they are not assumed transient), 401 and
// 404 map to fixed terminal errors, 403 backs off for Retry-After seconds
// (falling back to RetryDelay), 5xx backs off for RetryDelay, and any other
// non-200 status terminates with the server's body text. Backoff suspends
// only the calling goroutine.
func (d *Dispatcher) Do(ctx context.Context, method, rawURL string, headers map[string]string, query map[string]string) (*transport.Response, error) {
	endpoint := endpointLabel(rawURL)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	if d.config.Limiter != nil {
		allowed, err := d.config.Limiter.ShouldAllowRequest(ctx)
		if err != nil {
			// Shared state unavailable: proceed rather than fail the call.
			d.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Rate limit check failed")
		} else if !allowed {
			d.logger.Warn().
				Str("endpoint", endpoint).
				Msg("Request blocked by rate limiter")
			requestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
			return nil, &transport.APIError{StatusCode: 0, Message: "Request blocked: rate limit critical."}
		}
	}

	headers, cached := d.prepareConditional(ctx, method, rawURL, headers, query)

	var lastClass ErrorClass
	for attempt := 1; attempt <= d.config.MaxRetries; attempt++ {
		resp, err := d.transport.Perform(ctx, method, rawURL, headers, query)
		if err != nil {
			// Connection failures are not assumed transient: no retry.
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return nil, err
		}

		if d.config.Limiter != nil {
			if err := d.config.Limiter.UpdateFromHeaders(ctx, resp.Headers); err != nil {
				d.logger.Warn().Err(err).Msg("Failed to update rate limit state from headers")
			}
		}

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.Status)).Inc()

		switch {
		case resp.Status == 200:
			if attempt > 1 {
				d.logger.Info().
					Str("endpoint", endpoint).
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			d.storeInCache(ctx, method, rawURL, query, resp)
			return resp, nil

		case resp.Status == 304 && cached != nil:
			d.logger.Debug().Str("endpoint", endpoint).Msg("304 Not Modified - serving from cache")
			cache.NotModifiedResponses.Inc()
			return cached.ToResponseBody(), nil

		case resp.Status == 401:
			errorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
			return nil, &transport.APIError{StatusCode: 401, Message: "Unauthorized access. Check your token."}

		case resp.Status == 403:
			lastClass = ErrorClassRateLimit
			delay := retryAfter(resp.Headers.Get("Retry-After"), d.config.RetryDelay)
			if err := d.backoff(ctx, endpoint, ErrorClassRateLimit, attempt, delay); err != nil {
				return nil, err
			}

		case resp.Status == 404:
			errorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
			return nil, &transport.APIError{StatusCode: 404, Message: "Resource not found."}

		case resp.Status >= 500:
			lastClass = ErrorClassServer
			if err := d.backoff(ctx, endpoint, ErrorClassServer, attempt, d.config.RetryDelay); err != nil {
				return nil, err
			}

		default:
			errorsTotal.WithLabelValues(string(classifyStatus(resp.Status))).Inc()
			return nil, &transport.APIError{
				StatusCode: resp.Status,
				Message:    "Unexpected error: " + resp.Text(),
			}
		}
	}

	retryExhaustedTotal.WithLabelValues(string(lastClass)).Inc()
	d.logger.Warn().
		Str("endpoint", endpoint).
		Int("max_retries", d.config.MaxRetries).
		Msg("Retry attempts exhausted")

	return nil, &transport.APIError{StatusCode: 0, Message: transport.RetriesExhaustedMessage}
}

// backoff records a retryable outcome and suspends before the next attempt.
// No sleep happens after the final attempt; the loop then falls through to
// the retries-exhausted outcome.
func (d *Dispatcher) backoff(ctx context.Context, endpoint string, class ErrorClass, attempt int, delay time.Duration) error {
	errorsTotal.WithLabelValues(string(class)).Inc()

	if attempt >= d.config.MaxRetries {
		return nil
	}

	retriesTotal.WithLabelValues(string(class)).Inc()
	retryBackoffSeconds.WithLabelValues(string(class)).Observe(delay.Seconds())

	d.logger.Warn().
		Str("endpoint", endpoint).
		Str("error_class", string(class)).
		Int("attempt", attempt).
		Dur("backoff", delay).
		Msg("Retrying request after backoff")

	if err := d.sleep(ctx, delay); err != nil {
		return transport.NewTransportError(err)
	}
	return nil
}

// prepareConditional looks up the cache entry for a GET request and, on a
// hit, returns a header copy carrying If-None-Match alongside the entry.
func (d *Dispatcher) prepareConditional(ctx context.Context, method, rawURL string, headers map[string]string, query map[string]string) (map[string]string, *cache.Entry) {
	if d.config.Cache == nil || method != "GET" {
		return headers, nil
	}

	key := cacheKey(rawURL, query)
	entry, err := d.config.Cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			d.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
		}
		return headers, nil
	}
	if entry.ETag == "" {
		return headers, nil
	}

	withETag := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		withETag[k] = v
	}
	withETag["If-None-Match"] = entry.ETag

	cache.ConditionalRequestsSent.Inc()
	d.logger.Debug().
		Str("key", key.String()).
		Str("etag", entry.ETag).
		Msg("Making conditional request")

	return withETag, entry
}

// storeInCache records a successful GET response for later conditional
// requests. Cache failures only log; the response is already in hand.
func (d *Dispatcher) storeInCache(ctx context.Context, method, rawURL string, query map[string]string, resp *transport.Response) {
	if d.config.Cache == nil || method != "GET" {
		return
	}

	entry := cache.EntryFromResponse(resp.Status, resp.Headers, resp.Body)
	if entry.ETag == "" {
		return
	}

	key := cacheKey(rawURL, query)
	if err := d.config.Cache.Set(ctx, key, entry); err != nil {
		d.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache response")
	}
}

// cacheKey derives a deterministic cache key from the request URL and the
// explicit query params layered on top of it.
func cacheKey(rawURL string, query map[string]string) cache.Key {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return cache.Key{Endpoint: rawURL}
	}

	values := parsed.Query()
	for k, v := range query {
		values.Set(k, v)
	}

	return cache.Key{
		Endpoint: parsed.Host + parsed.Path,
		Query:    values,
	}
}

// retryAfter parses a Retry-After header value in seconds, falling back to
// the configured delay when absent or unparseable.
func retryAfter(header string, fallback time.Duration) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return fallback
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return fallback
	}

	return time.Duration(seconds) * time.Second
}

// endpointLabel reduces a request URL to a low-cardinality metric label.
func endpointLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "invalid"
	}
	if parsed.Path == "" {
		return "/"
	}
	return parsed.Path
}
