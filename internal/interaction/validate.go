package interaction

import (
	"net/url"
	"strings"
)

// ValidURL reports whether raw is a well-formed absolute URL with both a scheme and a host.
//
// The value is checked as typed: surrounding whitespace makes it invalid.
func ValidURL(raw string) bool {
	if raw == "" || strings.TrimSpace(raw) != raw {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
