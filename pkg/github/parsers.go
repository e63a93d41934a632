package github

import (
	"encoding/json"
	"fmt"

	"github.com/hubcrawl/github-rest-client/pkg/pagination"
)

// Repository is a normalized repository record from search results.
type Repository struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// CommitAuthor identifies who authored a commit and when.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// Commit is a normalized commit record.
type Commit struct {
	SHA     string       `json:"sha"`
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
}

// ContentEntry is a normalized file entry from a contents listing.
type ContentEntry struct {
	Path        string `json:"path"`
	DownloadURL string `json:"download_link"`
}

// The parsers below are pure functions over raw page payloads. They assume
// the well-formedness the GitHub API schema documents; a payload that fails
// to decode is a contract violation surfaced as an error, not something to
// recover from with leniency.

// ParseRepositories normalizes search result pages. Each page is a search
// response object whose items carry name and html_url.
func ParseRepositories(pages pagination.PageSet) ([]Repository, error) {
	var repos []Repository
	for i, page := range pages {
		var decoded struct {
			Items []struct {
				Name    string `json:"name"`
				HTMLURL string `json:"html_url"`
			} `json:"items"`
		}
		if err := json.Unmarshal(page, &decoded); err != nil {
			return nil, fmt.Errorf("decode search page %d: %w", i+1, err)
		}

		for _, item := range decoded.Items {
			repos = append(repos, Repository{Name: item.Name, HTMLURL: item.HTMLURL})
		}
	}
	return repos, nil
}

// ParseCommits normalizes commit listing pages. Each page is an array of
// commit objects.
func ParseCommits(pages pagination.PageSet) ([]Commit, error) {
	var commits []Commit
	for i, page := range pages {
		var decoded []struct {
			SHA    string `json:"sha"`
			Commit struct {
				Message string       `json:"message"`
				Author  CommitAuthor `json:"author"`
			} `json:"commit"`
		}
		if err := json.Unmarshal(page, &decoded); err != nil {
			return nil, fmt.Errorf("decode commits page %d: %w", i+1, err)
		}

		for _, entry := range decoded {
			commits = append(commits, Commit{
				SHA:     entry.SHA,
				Message: entry.Commit.Message,
				Author:  entry.Commit.Author,
			})
		}
	}
	return commits, nil
}

// ParseContents normalizes a directory contents listing (a single response
// body, not a page set: the contents endpoint is not paginated).
func ParseContents(body []byte) ([]ContentEntry, error) {
	var decoded []struct {
		Path        string `json:"path"`
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode contents listing: %w", err)
	}

	var entries []ContentEntry
	for _, item := range decoded {
		entries = append(entries, ContentEntry{Path: item.Path, DownloadURL: item.DownloadURL})
	}
	return entries, nil
}
