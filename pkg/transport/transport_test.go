package transport

import (
	"context"
	"net/http"
	"testing"

	"github.com/hubcrawl/github-rest-client/internal/testutil"
)

func TestPerform_Success(t *testing.T) {
	mock := testutil.NewMockGitHub()
	defer mock.Close()

	mock.SetResponse("/repos/octocat/Hello-World", testutil.NewJSONResponse(`{"name": "Hello-World"}`))

	tr := NewHTTPTransport()
	defer tr.Close()

	resp, err := tr.Perform(context.Background(), "GET", mock.URL()+"/repos/octocat/Hello-World", nil, nil)
	if err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if resp.Text() != `{"name": "Hello-World"}` {
		t.Errorf("Body = %q", resp.Text())
	}
}

func TestPerform_HTTPErrorStatusIsNotAnError(t *testing.T) {
	mock := testutil.NewMockGitHub()
	defer mock.Close()

	mock.SetResponse("/missing", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"message": "Not Found"}`,
	})

	tr := NewHTTPTransport()
	defer tr.Close()

	// 4xx/5xx are successful transport operations, not transport failures.
	resp, err := tr.Perform(context.Background(), "GET", mock.URL()+"/missing", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error for 404 status, got %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", resp.Status)
	}
}

func TestPerform_ConnectionFailure(t *testing.T) {
	mock := testutil.NewMockGitHub()
	url := mock.URL()
	mock.Close() // server gone: connection refused

	tr := NewHTTPTransport()
	defer tr.Close()

	resp, err := tr.Perform(context.Background(), "GET", url+"/anything", nil, nil)
	if resp != nil {
		t.Error("Expected nil response on connection failure")
	}
	if !IsTransportFailure(err) {
		t.Fatalf("Expected transport failure, got %v", err)
	}

	apiErr := err.(*APIError)
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", apiErr.StatusCode)
	}
}

func TestPerform_SetsHeaders(t *testing.T) {
	mock := testutil.NewMockGitHub()
	defer mock.Close()

	tr := NewHTTPTransport()
	defer tr.Close()

	headers := map[string]string{
		"Authorization":        "token test-token",
		"X-GitHub-Api-Version": "2022-11-28",
	}

	if _, err := tr.Perform(context.Background(), "GET", mock.URL()+"/", headers, nil); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	if got := mock.LastRequestHeader.Get("Authorization"); got != "token test-token" {
		t.Errorf("Authorization header = %q", got)
	}
	if got := mock.LastRequestHeader.Get("X-GitHub-Api-Version"); got != "2022-11-28" {
		t.Errorf("X-GitHub-Api-Version header = %q", got)
	}
}

func TestMergeQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		query    map[string]string
		expected string
	}{
		{
			name:     "no query params",
			rawURL:   "https://api.github.com/search/repositories",
			query:    nil,
			expected: "https://api.github.com/search/repositories",
		},
		{
			name:     "params added to bare url",
			rawURL:   "https://api.github.com/search/repositories",
			query:    map[string]string{"q": "go"},
			expected: "https://api.github.com/search/repositories?q=go",
		},
		{
			name:     "params merged with existing query string",
			rawURL:   "https://api.github.com/search/repositories?page=2",
			query:    map[string]string{"per_page": "30"},
			expected: "https://api.github.com/search/repositories?page=2&per_page=30",
		},
		{
			name:     "explicit param overrides existing",
			rawURL:   "https://api.github.com/search/repositories?per_page=10",
			query:    map[string]string{"per_page": "30"},
			expected: "https://api.github.com/search/repositories?per_page=30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mergeQuery(tt.rawURL, tt.query)
			if err != nil {
				t.Fatalf("mergeQuery failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("mergeQuery = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResponse_JSON(t *testing.T) {
	resp := &Response{
		Status: 200,
		Body:   []byte(`{"name": "Hello-World", "html_url": "https://github.com/octocat/Hello-World"}`),
	}

	var decoded struct {
		Name    string `json:"name"`
		HTMLURL string `json:"html_url"`
	}
	if err := resp.JSON(&decoded); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	if decoded.Name != "Hello-World" {
		t.Errorf("Name = %q", decoded.Name)
	}
	if decoded.HTMLURL != "https://github.com/octocat/Hello-World" {
		t.Errorf("HTMLURL = %q", decoded.HTMLURL)
	}
}
