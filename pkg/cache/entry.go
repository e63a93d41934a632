package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hubcrawl/github-rest-client/pkg/transport"
)

const (
	// DefaultFreshness is the fallback freshness window when the response
	// carries no usable Cache-Control max-age directive. GitHub's API
	// typically sends max-age=60.
	DefaultFreshness = 60 * time.Second

	// RevalidationTTL bounds how long an entry is kept for ETag
	// revalidation after it goes stale.
	RevalidationTTL = 24 * time.Hour
)

// Entry represents a cached GitHub API response.
type Entry struct {
	// Data is the response body.
	Data []byte `json:"data"`

	// ETag is the validator sent back as If-None-Match.
	ETag string `json:"etag"`

	// StatusCode is the HTTP status of the cached response.
	StatusCode int `json:"status_code"`

	// Headers are the response headers at cache time.
	Headers http.Header `json:"headers"`

	// FreshUntil is when the entry stops being fresh, derived from
	// Cache-Control max-age.
	FreshUntil time.Time `json:"fresh_until"`

	// CachedAt is when the response was stored.
	CachedAt time.Time `json:"cached_at"`
}

// IsFresh reports whether the entry is still within its freshness window.
// Stale entries are still usable for conditional revalidation.
func (e *Entry) IsFresh() bool {
	return time.Now().Before(e.FreshUntil)
}

// Age returns how long ago the entry was cached.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}

// ToResponseBody rebuilds a success response from the cached entry, as
// served after a 304 revalidation.
func (e *Entry) ToResponseBody() *transport.Response {
	return &transport.Response{
		Status:  200,
		Headers: e.Headers.Clone(),
		Body:    e.Data,
	}
}

// EntryFromResponse builds a cache entry from a successful response.
func EntryFromResponse(status int, headers http.Header, body []byte) *Entry {
	now := time.Now()
	return &Entry{
		Data:       body,
		ETag:       headers.Get("ETag"),
		StatusCode: status,
		Headers:    headers.Clone(),
		FreshUntil: now.Add(maxAge(headers)),
		CachedAt:   now,
	}
}

// maxAge extracts the max-age directive from the Cache-Control header.
func maxAge(headers http.Header) time.Duration {
	for _, directive := range strings.Split(headers.Get("Cache-Control"), ",") {
		directive = strings.TrimSpace(directive)
		value, found := strings.CutPrefix(directive, "max-age=")
		if !found {
			continue
		}

		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}

	return DefaultFreshness
}
