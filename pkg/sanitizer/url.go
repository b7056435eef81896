package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeImageURL accepts absolute http(s) URLs and site-relative paths.
// Absolute URLs get a lowercase scheme and host; the path is left as is.
func NormalizeImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
