package client

// ErrorClass represents a classification of request outcomes.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 403 rate limit responses.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// classifyStatus categorizes an HTTP status for observability and retry
// decisions. GitHub signals primary and secondary rate limits with 403.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == 403:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// shouldRetry determines if an outcome should be retried based on its
// classification. Retryable conditions are exactly rate limits and server
// errors; everything else terminates immediately.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassRateLimit:
		return true
	case ErrorClassServer:
		return true
	default:
		return false
	}
}
