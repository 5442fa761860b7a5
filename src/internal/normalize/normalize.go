// Package normalize holds the text heuristics applied to catalog fields
// before they become a schema.Record.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SplitSeries splits "<name> <index>" on the maximal trailing run of ASCII
// digits. index is nil when the string has no trailing digits.
func SplitSeries(s string) (name string, index *string) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	name = strings.TrimSpace(s[:i])
	if i == len(s) {
		return name, nil
	}
	idx := s[i:]
	return name, &idx
}

// CategoryTags splits one or more ">"-delimited category paths into trimmed
// segments, dropping blanks and repeats (first occurrence wins).
func CategoryTags(paths ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range paths {
		for _, seg := range strings.Split(p, ">") {
			seg = strings.TrimSpace(seg)
			if seg == "" || seen[seg] {
				continue
			}
			seen[seg] = true
			out = append(out, seg)
		}
	}
	return out
}

// RescaleRating maps a 0-10 customer score onto 0-5. Non-numeric input
// yields nil.
func RescaleRating(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := math.Min(math.Max(v/2, 0), 5)
	return &r
}

var coverTier = regexp.MustCompile(`/(?:coversum|cover\d*)/`)

// UpgradeCoverURL rewrites the size-tier path segment of a catalog cover URL
// to the largest tier. Applying it twice gives the same result as once.
func UpgradeCoverURL(u string) string {
	return coverTier.ReplaceAllString(u, "/cover500/")
}
