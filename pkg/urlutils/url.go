// Package urlutils provides URL validation helpers.
package urlutils

import "net/url"

// IsHTTPURL reports whether urlStr is a valid absolute http or https URL
func IsHTTPURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
