package pagination

import (
	"net/http"
	"strings"
)

// NextPageURL parses the Link header to find the URL for the next page.
// The header is comma-separated entries of the form `<url>; rel="next"`;
// the URL is the segment between the first '<' and the first '>' of the
// entry tagged rel="next". Returns "" when no such entry exists.
func NextPageURL(headers http.Header) string {
	linkHeader := headers.Get("Link")
	if linkHeader == "" {
		return ""
	}

	for _, link := range strings.Split(linkHeader, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}

		start := strings.Index(link, "<")
		end := strings.Index(link, ">")
		if start < 0 || end < start {
			continue
		}
		return link[start+1 : end]
	}

	return ""
}
