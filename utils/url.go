package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizePageURL validates a user supplied page URL and returns it with any
// raw spaces %20 encoded. Only absolute http and https URLs are accepted.
// Userinfo is kept so pages behind basic auth can still be fetched.
func NormalizePageURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty url")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	encoded := scheme + "://"
	if parsed.User != nil {
		encoded += parsed.User.String() + "@"
	}
	encoded += parsed.Host + parsed.EscapedPath()
	if parsed.RawQuery != "" {
		encoded += "?" + strings.ReplaceAll(parsed.RawQuery, " ", "%20")
	}
	return encoded, nil
}
