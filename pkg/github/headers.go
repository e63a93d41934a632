// Package github layers GitHub-specific concerns over the dispatcher and
// pagination driver: request headers, high-level operations, and parsers
// that normalize raw page payloads into flat records.
package github

// DefaultAPIVersion is the GitHub REST API version requested when the
// GITHUB_API_VERSION environment variable is unset.
const DefaultAPIVersion = "2022-11-28"

// GenerateHeaders produces the fixed header set for GitHub API requests.
// The dispatcher consumes these verbatim.
func GenerateHeaders(authToken, appName, apiVersion string) map[string]string {
	return map[string]string{
		"Accept":               "application/vnd.github+json",
		"Authorization":        "token " + authToken,
		"User-Agent":           appName,
		"X-GitHub-Api-Version": apiVersion,
	}
}
