// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"net/url"
	"strings"
)

// titleParam is the query parameter the search endpoint reads.
const titleParam = "title"

// EncodeTitle percent-encodes title for use as a query value. Spaces become
// %20 rather than "+", matching what a browser's encodeURIComponent sends,
// and a literal "+" is encoded as %2B. No other normalization is applied:
// an empty or whitespace-only title is sent as is.
func EncodeTitle(title string) string {
	return strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
}

// RequestURL returns the search URL for title: the endpoint with
// title=<encoded title> appended. Existing query parameters on the
// endpoint are kept as they are.
func RequestURL(endpoint, title string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing search endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("search endpoint %q must be an absolute URL", endpoint)
	}

	param := titleParam + "=" + EncodeTitle(title)
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String(), nil
}
