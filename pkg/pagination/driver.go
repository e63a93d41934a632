package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hubcrawl/github-rest-client/pkg/logging"
	"github.com/hubcrawl/github-rest-client/pkg/transport"
)

// Dispatcher is the interface the driver needs for single-request dispatch.
// *client.Dispatcher implements it.
type Dispatcher interface {
	Do(ctx context.Context, method, url string, headers map[string]string, query map[string]string) (*transport.Response, error)
}

// PageSet is an ordered sequence of raw page bodies, fetch order = page
// order. Each element is the untouched decoded body of one successful page
// fetch. Length never exceeds the configured page cap.
type PageSet []json.RawMessage

// Config holds pagination driver configuration.
type Config struct {
	// MaxPages bounds the number of pages fetched. A non-positive value
	// fetches zero pages.
	MaxPages int

	// PerPage is the page size requested via the per_page query parameter.
	// A non-positive value falls back to the default.
	PerPage int
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages: 5,
		PerPage:  30,
	}
}

// FetchPaginated walks a linked sequence of pages starting at url,
// aggregating raw page payloads. It continues while a next-page URL is known
// and fewer than MaxPages pages have been fetched. A failure on any page
// discards accumulated pages and surfaces that exact error; there are no
// partial results.
func FetchPaginated(ctx context.Context, d Dispatcher, url string, headers map[string]string, params map[string]string, cfg Config) (PageSet, error) {
	if cfg.PerPage <= 0 {
		cfg.PerPage = 30
	}

	logger := logging.NewLogger("pagination")
	start := time.Now()

	// The caller's params are left untouched; only per_page is managed here.
	query := make(map[string]string, len(params)+1)
	for k, v := range params {
		query[k] = v
	}
	query["per_page"] = strconv.Itoa(cfg.PerPage)

	results := PageSet{}
	for pageCount := 0; url != "" && pageCount < cfg.MaxPages; pageCount++ {
		resp, err := d.Do(ctx, "GET", url, headers, query)
		if err != nil {
			return nil, err
		}

		var page json.RawMessage
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, &transport.APIError{
				StatusCode: 0,
				Message:    fmt.Sprintf("Invalid JSON in page body: %v", err),
			}
		}
		results = append(results, page)

		// The server-provided next link carries the page cursor; the
		// driver never constructs page numbers itself.
		url = NextPageURL(resp.Headers)
		if url != "" {
			logger.Debug().
				Str("next_url", url).
				Int("pages_fetched", pageCount+1).
				Msg("Following next page link")
		}
	}

	logger.Info().
		Int("pages", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Paginated fetch complete")

	return results, nil
}
