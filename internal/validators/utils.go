package validators

import (
	"net/url"
	"strings"
)

// IsValidURL checks if a URL is an absolute http(s) URL
func IsValidURL(rawURL string) bool {
	// Parse the URL
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	// Check if scheme is present (http or https)
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if u.Host == "" {
		return false
	}
	return true
}

// IsSafeFamilyKey checks that a family key can be used as a single directory name.
// Dot-prefixed names are reserved for staging directories.
func IsSafeFamilyKey(key string) bool {
	if strings.TrimSpace(key) == "" {
		return false
	}
	if strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, "/\\\x00")
}
