// Command gh-fetch demonstrates the client: it fires three concurrent
// fetches against the GitHub API (repository search, commit history,
// directory contents), joins them all, and prints each outcome.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hubcrawl/github-rest-client/pkg/cache"
	"github.com/hubcrawl/github-rest-client/pkg/client"
	"github.com/hubcrawl/github-rest-client/pkg/github"
	"github.com/hubcrawl/github-rest-client/pkg/logging"
	"github.com/hubcrawl/github-rest-client/pkg/pagination"
	"github.com/hubcrawl/github-rest-client/pkg/ratelimit"
	"github.com/hubcrawl/github-rest-client/pkg/transport"
)

const appName = "GitHub-API-Client"

func main() {
	logger := logging.Setup(logging.FromEnv())

	authToken := os.Getenv("GITHUB_TOKEN")
	if authToken == "" {
		logger.Fatal().Msg("GitHub token not found. Set the GITHUB_TOKEN environment variable.")
	}

	apiVersion := getEnv("GITHUB_API_VERSION", github.DefaultAPIVersion)
	headers := github.GenerateHeaders(authToken, appName, apiVersion)

	cfg := client.DefaultConfig()
	setupSharedState(&cfg, logger)

	// The session owns the transport for the life of the run; deferring
	// Close guarantees release on every exit path.
	session := transport.NewSession(transport.NewHTTPTransport())
	defer session.Close()

	dispatcher := client.New(session.Transport(), cfg)
	service := github.NewService(dispatcher, headers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Three independent fetches, joined together. One failure never
	// cancels the siblings; each outcome is inspected on its own.
	results := github.Gather(ctx,
		func(ctx context.Context) (any, error) {
			return service.SearchRepositories(ctx, "machine learning",
				pagination.Config{MaxPages: 3, PerPage: 3})
		},
		func(ctx context.Context) (any, error) {
			return service.ListCommits(ctx, "octocat", "Hello-World",
				pagination.Config{MaxPages: 2, PerPage: 3})
		},
		func(ctx context.Context) (any, error) {
			return service.GetContents(ctx, "octocat", "Hello-World", "")
		},
	)

	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("API Error: %v\n", result.Err)
			continue
		}

		encoded, err := json.MarshalIndent(result.Value, "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encode result")
			continue
		}
		fmt.Println(string(encoded))
	}
}

// setupSharedState wires the optional Redis-backed rate limit tracker and
// response cache when REDIS_URL is set. The client works without them; they
// only add shared-state coordination across processes.
func setupSharedState(cfg *client.Config, logger zerolog.Logger) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("redis_url", redisURL).
			Msg("Redis unavailable - rate limit tracking and caching disabled")
		return
	}

	cfg.Limiter = ratelimit.NewTracker(redisClient, logging.NewLogger("ratelimit"))
	cfg.Cache = cache.NewManager(redisClient)
	logger.Info().Str("redis_url", redisURL).Msg("Connected to Redis")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
