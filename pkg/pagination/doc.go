// Package pagination walks GitHub's Link-header pagination.
//
// GitHub paginated endpoints advertise the next page in the Link response
// header (`<url>; rel="next", <url>; rel="last"`). The driver repeatedly
// invokes the request dispatcher, following rel="next" links until the chain
// ends or a configured page cap is reached, and aggregates the raw page
// bodies in fetch order.
//
// Example usage:
//
//	d := client.New(transport.NewHTTPTransport(), client.DefaultConfig())
//	pages, err := pagination.FetchPaginated(ctx, d,
//		"https://api.github.com/search/repositories",
//		headers, map[string]string{"q": "machine learning"},
//		pagination.DefaultConfig())
//
// The driver:
//   - Sets per_page on every request
//   - Trusts the server-provided next link for page cursors
//   - Aborts on the first failed page, returning that exact error and no
//     partial results
//   - Guarantees termination: MaxPages bounds total work even on an
//     endless link chain
package pagination
