package pagination

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/hubcrawl/github-rest-client/pkg/transport"
)

// recordedRequest captures one dispatch made by the driver.
type recordedRequest struct {
	url   string
	query map[string]string
}

// stubDispatcher serves scripted responses keyed by URL and records every
// dispatch.
type stubDispatcher struct {
	responses map[string]*transport.Response
	failURL   string
	failWith  error
	requests  []recordedRequest
}

func (s *stubDispatcher) Do(ctx context.Context, method, url string, headers map[string]string, query map[string]string) (*transport.Response, error) {
	queryCopy := make(map[string]string, len(query))
	for k, v := range query {
		queryCopy[k] = v
	}
	s.requests = append(s.requests, recordedRequest{url: url, query: queryCopy})

	if url == s.failURL {
		return nil, s.failWith
	}

	resp, ok := s.responses[url]
	if !ok {
		return nil, &transport.APIError{StatusCode: 404, Message: "Resource not found."}
	}
	return resp, nil
}

// page builds a response with the given body and, when next is non-empty, a
// Link header advertising it as rel="next".
func page(body, next string) *transport.Response {
	headers := http.Header{}
	if next != "" {
		headers.Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="last"`, next, next))
	}
	return &transport.Response{Status: 200, Headers: headers, Body: []byte(body)}
}

func TestFetchPaginated_StopsOnMissingLink(t *testing.T) {
	d := &stubDispatcher{responses: map[string]*transport.Response{
		"https://api.github.com/items":        page(`{"page": 1}`, "https://api.github.com/items?page=2"),
		"https://api.github.com/items?page=2": page(`{"page": 2}`, "https://api.github.com/items?page=3"),
		"https://api.github.com/items?page=3": page(`{"page": 3}`, ""),
	}}

	pages, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
		Config{MaxPages: 5, PerPage: 30})
	if err != nil {
		t.Fatalf("FetchPaginated failed: %v", err)
	}

	// Stopped because the link chain ended, not because the cap was hit.
	if len(pages) != 3 {
		t.Fatalf("Pages = %d, want 3", len(pages))
	}
	for i, want := range []string{`{"page": 1}`, `{"page": 2}`, `{"page": 3}`} {
		if string(pages[i]) != want {
			t.Errorf("Page %d = %s, want %s", i, pages[i], want)
		}
	}
	if len(d.requests) != 3 {
		t.Errorf("Requests = %d, want 3", len(d.requests))
	}
}

func TestFetchPaginated_MaxPagesBoundsEndlessChain(t *testing.T) {
	// Every page links to itself: an endless chain.
	d := &stubDispatcher{responses: map[string]*transport.Response{
		"https://api.github.com/items": page(`{"n": 1}`, "https://api.github.com/items"),
	}}

	pages, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
		Config{MaxPages: 2, PerPage: 30})
	if err != nil {
		t.Fatalf("FetchPaginated failed: %v", err)
	}

	if len(pages) != 2 {
		t.Errorf("Pages = %d, want exactly 2", len(pages))
	}
	if len(d.requests) != 2 {
		t.Errorf("Requests = %d, want 2", len(d.requests))
	}
}

func TestFetchPaginated_ErrorDiscardsAccumulatedPages(t *testing.T) {
	failErr := &transport.APIError{StatusCode: 404, Message: "Resource not found."}
	d := &stubDispatcher{
		responses: map[string]*transport.Response{
			"https://api.github.com/items":        page(`{"page": 1}`, "https://api.github.com/items?page=2"),
			"https://api.github.com/items?page=2": page(`{"page": 2}`, "https://api.github.com/items?page=3"),
		},
		failURL:  "https://api.github.com/items?page=3",
		failWith: failErr,
	}

	pages, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
		Config{MaxPages: 5, PerPage: 30})

	// All-or-nothing: the exact error surfaces and no partial results.
	if err != failErr {
		t.Fatalf("Expected the dispatch error back unchanged, got %v", err)
	}
	if pages != nil {
		t.Errorf("Pages = %v, want nil", pages)
	}
}

func TestFetchPaginated_NonPositiveMaxPages(t *testing.T) {
	for _, maxPages := range []int{0, -1} {
		d := &stubDispatcher{responses: map[string]*transport.Response{
			"https://api.github.com/items": page(`{"page": 1}`, "https://api.github.com/items"),
		}}

		pages, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
			Config{MaxPages: maxPages, PerPage: 30})
		if err != nil {
			t.Fatalf("FetchPaginated failed: %v", err)
		}

		if len(pages) != 0 {
			t.Errorf("MaxPages=%d: Pages = %d, want 0", maxPages, len(pages))
		}
		if len(d.requests) != 0 {
			t.Errorf("MaxPages=%d: Requests = %d, want 0", maxPages, len(d.requests))
		}
	}
}

func TestFetchPaginated_SetsPerPageOnEveryRequest(t *testing.T) {
	d := &stubDispatcher{responses: map[string]*transport.Response{
		"https://api.github.com/items":        page(`{"page": 1}`, "https://api.github.com/items?page=2"),
		"https://api.github.com/items?page=2": page(`{"page": 2}`, ""),
	}}

	params := map[string]string{"q": "machine learning"}
	_, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, params,
		Config{MaxPages: 5, PerPage: 3})
	if err != nil {
		t.Fatalf("FetchPaginated failed: %v", err)
	}

	for i, req := range d.requests {
		if req.query["per_page"] != "3" {
			t.Errorf("Request %d per_page = %q, want %q", i, req.query["per_page"], "3")
		}
		if req.query["q"] != "machine learning" {
			t.Errorf("Request %d q = %q, want %q", i, req.query["q"], "machine learning")
		}
	}

	// The caller's params map stays untouched.
	if _, exists := params["per_page"]; exists {
		t.Error("Caller params were mutated with per_page")
	}
}

func TestFetchPaginated_NonPositivePerPageUsesDefault(t *testing.T) {
	d := &stubDispatcher{responses: map[string]*transport.Response{
		"https://api.github.com/items": page(`{"page": 1}`, ""),
	}}

	if _, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
		Config{MaxPages: 1, PerPage: 0}); err != nil {
		t.Fatalf("FetchPaginated failed: %v", err)
	}

	if got := d.requests[0].query["per_page"]; got != "30" {
		t.Errorf("per_page = %q, want %q", got, "30")
	}
}

func TestFetchPaginated_InvalidJSONPage(t *testing.T) {
	d := &stubDispatcher{responses: map[string]*transport.Response{
		"https://api.github.com/items": {Status: 200, Headers: http.Header{}, Body: []byte(`{"broken":`)},
	}}

	pages, err := FetchPaginated(context.Background(), d, "https://api.github.com/items", nil, nil,
		Config{MaxPages: 5, PerPage: 30})
	if pages != nil {
		t.Error("Expected nil pages on invalid JSON")
	}

	apiErr, ok := err.(*transport.APIError)
	if !ok {
		t.Fatalf("Expected *transport.APIError, got %T", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", apiErr.StatusCode)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want 5", cfg.MaxPages)
	}
	if cfg.PerPage != 30 {
		t.Errorf("PerPage = %d, want 30", cfg.PerPage)
	}
}
