// Package transport defines the capability interface the request dispatcher
// runs on: perform one HTTP request and hand back status, headers, and body,
// or a transport-level failure. Ordinary HTTP error statuses (4xx/5xx) are
// successful transport operations and never surface as errors here; only
// connection-level failures (DNS, reset, timeout) become an APIError with
// StatusCode 0.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/hubcrawl/github-rest-client/pkg/logging"
)

// Response is the outcome of one successful transport operation. A fresh
// attempt produces a fresh Response; instances are never retried in place.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Transport performs single HTTP requests. Implementations must be safe for
// concurrent use by multiple in-flight logical requests.
type Transport interface {
	// Perform executes one request. The error, when non-nil, is always a
	// *APIError with StatusCode 0; HTTP error statuses come back as a
	// Response.
	Perform(ctx context.Context, method, rawURL string, headers map[string]string, query map[string]string) (*Response, error)

	// Close releases underlying connections. Idempotent.
	Close()
}

// HTTPTransport is the production Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPTransport creates a Transport with a pooled HTTP client.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: cleanhttp.DefaultPooledClient(),
		logger: logging.NewLogger("transport"),
	}
}

// Perform implements Transport.
func (t *HTTPTransport) Perform(ctx context.Context, method, rawURL string, headers map[string]string, query map[string]string) (*Response, error) {
	target, err := mergeQuery(rawURL, query)
	if err != nil {
		return nil, NewTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, NewTransportError(err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("method", method).
			Str("url", rawURL).
			Msg("HTTP request failed")
		return nil, NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(err)
	}

	t.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Msg("Request performed")

	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header.Clone(),
		Body:    body,
	}, nil
}

// Close implements Transport. It releases idle connections held by the pool.
func (t *HTTPTransport) Close() {
	t.client.CloseIdleConnections()
}

// mergeQuery folds query params into rawURL, preserving any query string the
// URL already carries. Server-provided next-page links arrive with their own
// cursor parameters; explicit params override same-named ones.
func mergeQuery(rawURL string, query map[string]string) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	values := parsed.Query()
	for key, value := range query {
		values.Set(key, value)
	}
	parsed.RawQuery = values.Encode()

	return parsed.String(), nil
}
