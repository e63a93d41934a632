package github

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hubcrawl/github-rest-client/pkg/logging"
	"github.com/hubcrawl/github-rest-client/pkg/pagination"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// Service exposes the high-level GitHub operations. It is stateless across
// calls and safe for concurrent use.
type Service struct {
	dispatcher pagination.Dispatcher
	headers    map[string]string
	baseURL    string
	logger     zerolog.Logger
}

// NewService creates a Service over a dispatcher with the fixed request
// headers from GenerateHeaders.
func NewService(d pagination.Dispatcher, headers map[string]string) *Service {
	return &Service{
		dispatcher: d,
		headers:    headers,
		baseURL:    DefaultBaseURL,
		logger:     logging.NewLogger("github"),
	}
}

// SetBaseURL overrides the API root (for testing).
func (s *Service) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

// SearchRepositories searches for repositories matching a query, walking up
// to cfg.MaxPages result pages.
func (s *Service) SearchRepositories(ctx context.Context, query string, cfg pagination.Config) ([]Repository, error) {
	url := s.baseURL + "/search/repositories"
	params := map[string]string{"q": query}

	pages, err := pagination.FetchPaginated(ctx, s.dispatcher, url, s.headers, params, cfg)
	if err != nil {
		return nil, err
	}

	repos, err := ParseRepositories(pages)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("query", query).
		Int("pages", len(pages)).
		Int("repositories", len(repos)).
		Msg("Repository search complete")

	return repos, nil
}

// ListCommits fetches the commit history of a repository, walking up to
// cfg.MaxPages pages.
func (s *Service) ListCommits(ctx context.Context, owner, repo string, cfg pagination.Config) ([]Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits", s.baseURL, owner, repo)

	pages, err := pagination.FetchPaginated(ctx, s.dispatcher, url, s.headers, nil, cfg)
	if err != nil {
		return nil, err
	}

	commits, err := ParseCommits(pages)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Int("commits", len(commits)).
		Msg("Commit history fetched")

	return commits, nil
}

// GetContents fetches the contents of a file or directory in a repository.
// The contents endpoint is not paginated: this is a single dispatch.
func (s *Service) GetContents(ctx context.Context, owner, repo, path string) ([]ContentEntry, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, owner, repo, path)

	resp, err := s.dispatcher.Do(ctx, "GET", url, s.headers, nil)
	if err != nil {
		return nil, err
	}

	return ParseContents(resp.Body)
}
