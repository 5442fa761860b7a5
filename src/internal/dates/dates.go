package dates

import (
	"strings"
	"time"
)

// pubDateLayouts are tried in order; the catalog mostly sends the first one,
// the XML feed sometimes sends RFC1123.
var pubDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01",
	"20060102",
	"2006",
}

// ParsePubDate parses a publication date string. ok is false for empty or
// unparsable input.
func ParsePubDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// PubDate is ParsePubDate returning nil on failure.
func PubDate(s string) *time.Time {
	t, ok := ParsePubDate(s)
	if !ok {
		return nil
	}
	return &t
}
