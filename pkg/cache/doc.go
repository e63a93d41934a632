// Package cache provides conditional-request caching for GitHub API
// responses with a Redis backend.
//
// GitHub returns an ETag with most responses and honors If-None-Match on
// subsequent requests; a 304 Not Modified answer does not count against the
// rate limit. The cache stores successful response bodies keyed by endpoint
// and query so the dispatcher can revalidate instead of re-downloading.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Endpoint: "api.github.com/repos/octocat/Hello-World/commits",
//		Query:    url.Values{"per_page": []string{"30"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// no stored ETag - make an unconditional request
//	}
//
// Entries remain stored past their freshness window: a stale ETag is still a
// valid revalidation token. Redis expiry is bounded by RevalidationTTL.
//
// # Metrics
//
//   - github_cache_hits_total - stored entries found
//   - github_cache_misses_total - lookups with nothing stored
//   - github_cache_304_responses_total - successful revalidations
//   - github_cache_conditional_requests_total - If-None-Match requests sent
//   - github_cache_errors_total{operation} - cache operation errors
package cache
