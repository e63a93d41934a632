// Package metrics provides the centralized Prometheus registry reference for
// the GitHub client. Metrics are defined in their respective packages
// (client, cache, ratelimit) to maintain modularity and avoid circular
// dependencies.
//
// This package documents the metrics the module exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client. All
// metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - github_client_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - github_client_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - github_client_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - github_client_retries_total{error_class} (Counter): Retry attempts by error class
//   - github_client_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - github_client_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Rate Limit Metrics (pkg/ratelimit):
//   - github_rate_limit_remaining (Gauge): Requests remaining in the current window
//   - github_rate_limit_blocks_total (Counter): Requests blocked at the critical threshold
//   - github_rate_limit_throttles_total (Counter): Requests throttled at the warning threshold
//
// Cache Metrics (pkg/cache):
//   - github_cache_hits_total (Counter): Stored entries found
//   - github_cache_misses_total (Counter): Lookups with nothing stored
//   - github_cache_304_responses_total (Counter): Revalidations served from cache
//   - github_cache_conditional_requests_total (Counter): If-None-Match requests sent
//   - github_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(github_client_errors_total[5m])
//
//   # Retry Rate by Class
//   rate(github_client_retries_total[5m])
//
//   # Rate Limit Budget
//   github_rate_limit_remaining < 100
//
//   # Conditional Request Hit Rate
//   rate(github_cache_304_responses_total[5m]) /
//   rate(github_cache_conditional_requests_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(github_client_request_duration_seconds_bucket[5m]))
