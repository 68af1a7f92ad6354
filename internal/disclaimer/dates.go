package disclaimer

import (
	"net/url"
	"strings"
	"time"
)

// isoLayouts are the ISO 8601 shapes accepted for dates and datetimes
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO8601 parses an ISO 8601 date or datetime. Values without a zone are UTC.
func ParseISO8601(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsHTTPURL reports whether raw parses as an absolute http or https URL with a host
func IsHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// WordCount counts whitespace-delimited words
func WordCount(s string) int {
	return len(strings.Fields(s))
}
