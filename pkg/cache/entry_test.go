package cache

import (
	"net/http"
	"testing"
	"time"
)

func TestMaxAge(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected time.Duration
	}{
		{
			name:     "github style",
			header:   "private, max-age=60, s-maxage=60",
			expected: 60 * time.Second,
		},
		{
			name:     "max-age only",
			header:   "max-age=300",
			expected: 300 * time.Second,
		},
		{
			name:     "no max-age directive",
			header:   "private, no-transform",
			expected: DefaultFreshness,
		},
		{
			name:     "header absent",
			header:   "",
			expected: DefaultFreshness,
		},
		{
			name:     "unparseable max-age",
			header:   "max-age=soon",
			expected: DefaultFreshness,
		},
		{
			name:     "negative max-age",
			header:   "max-age=-10",
			expected: DefaultFreshness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.header != "" {
				headers.Set("Cache-Control", tt.header)
			}

			if got := maxAge(headers); got != tt.expected {
				t.Errorf("maxAge = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEntryFromResponse(t *testing.T) {
	headers := http.Header{}
	headers.Set("ETag", `W/"etag-123"`)
	headers.Set("Cache-Control", "private, max-age=60")
	headers.Set("Content-Type", "application/json; charset=utf-8")

	entry := EntryFromResponse(200, headers, []byte(`{"ok": true}`))

	if entry.ETag != `W/"etag-123"` {
		t.Errorf("ETag = %q", entry.ETag)
	}
	if entry.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}
	if string(entry.Data) != `{"ok": true}` {
		t.Errorf("Data = %s", entry.Data)
	}
	if !entry.IsFresh() {
		t.Error("A just-cached entry with max-age=60 should be fresh")
	}
}

func TestEntry_IsFresh(t *testing.T) {
	stale := &Entry{FreshUntil: time.Now().Add(-time.Minute)}
	if stale.IsFresh() {
		t.Error("Entry past FreshUntil should not be fresh")
	}

	fresh := &Entry{FreshUntil: time.Now().Add(time.Minute)}
	if !fresh.IsFresh() {
		t.Error("Entry within FreshUntil should be fresh")
	}
}

func TestEntry_ToResponseBody(t *testing.T) {
	headers := http.Header{}
	headers.Set("ETag", `"abc"`)
	headers.Set("Content-Type", "application/json; charset=utf-8")

	entry := &Entry{
		Data:       []byte(`{"cached": true}`),
		ETag:       `"abc"`,
		StatusCode: 200,
		Headers:    headers,
	}

	resp := entry.ToResponseBody()

	if resp.Status != 200 {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != `{"cached": true}` {
		t.Errorf("Body = %s", resp.Body)
	}
	if resp.Headers.Get("ETag") != `"abc"` {
		t.Errorf("ETag header = %q", resp.Headers.Get("ETag"))
	}

	// The rebuilt response owns its headers; mutating it must not touch
	// the cached entry.
	resp.Headers.Set("ETag", `"mutated"`)
	if entry.Headers.Get("ETag") != `"abc"` {
		t.Error("Mutating the rebuilt response leaked into the cache entry")
	}
}
