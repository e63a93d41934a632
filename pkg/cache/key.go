package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached GitHub API response.
type Key struct {
	// Endpoint is the host and path of the request
	// (e.g. "api.github.com/search/repositories").
	Endpoint string

	// Query holds the request's query parameters.
	Query url.Values
}

// String generates a deterministic cache key string.
// Format: github:cache:endpoint:query1=val1:query2=val2
//
// Example:
//
//	github:cache:api.github.com/search/repositories:per_page=30:q=go
func (k Key) String() string {
	parts := []string{"github", "cache"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Sorted query params for determinism
	if len(k.Query) > 0 {
		queryKeys := make([]string, 0, len(k.Query))
		for key := range k.Query {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.Query.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
