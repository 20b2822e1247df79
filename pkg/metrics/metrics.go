// Package metrics documents the Prometheus metrics exposed by the
// Lomography client. All metrics are defined in their respective packages
// (client, cache, ratelimit) to maintain modularity and avoid circular
// dependencies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Budget Metrics (pkg/ratelimit):
//   - lomo_request_budget_remaining (Gauge): Requests remaining in the current budget window
//   - lomo_rate_limit_blocks_total (Counter): Requests blocked due to an exhausted budget
//   - lomo_rate_limit_throttles_total (Counter): Requests throttled due to a low budget
//
// Cache Metrics (pkg/cache):
//   - lomo_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - lomo_cache_misses_total (Counter): Cache misses
//   - lomo_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - lomo_304_responses_total (Counter): 304 Not Modified responses
//   - lomo_conditional_requests_total (Counter): Conditional requests sent with validators
//   - lomo_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - lomo_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - lomo_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - lomo_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - lomo_retries_total{error_class} (Counter): Retry attempts by error class
//   - lomo_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - lomo_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(lomo_cache_hits_total[5m])) /
//   (sum(rate(lomo_cache_hits_total[5m])) + sum(rate(lomo_cache_misses_total[5m])))
//
//   # Budget Status
//   lomo_request_budget_remaining < 30
//
//   # Request Error Rate
//   rate(lomo_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(lomo_request_duration_seconds_bucket[5m]))
