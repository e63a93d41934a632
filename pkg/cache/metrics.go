package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks lookups that found a stored entry.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_cache_hits_total",
			Help: "Total number of GitHub response cache hits",
		},
	)

	// CacheMisses tracks lookups with nothing stored.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_cache_misses_total",
			Help: "Total number of GitHub response cache misses",
		},
	)

	// NotModifiedResponses tracks successful ETag revalidations.
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_cache_304_responses_total",
			Help: "Total number of 304 Not Modified responses served from cache",
		},
	)

	// ConditionalRequestsSent tracks requests carrying If-None-Match.
	ConditionalRequestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_cache_conditional_requests_total",
			Help: "Total number of conditional requests sent with If-None-Match",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
