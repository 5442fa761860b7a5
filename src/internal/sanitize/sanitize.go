package sanitize

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aladin/src/internal/schema"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated absolute http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}

// CleanTags trims and dedupes tags keeping first-occurrence order.
// Case is preserved.
func CleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	const maxTags = 64
	const maxLen = 128
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = CleanString(t, maxLen)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) >= maxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CleanAuthors sanitizes author names and drops blanks.
func CleanAuthors(authors []string) []string {
	if len(authors) == 0 {
		return nil
	}
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = CleanString(a, 256); a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// PlainText reduces an HTML fragment to its text. Line breaks survive as
// newlines. Input without markup or entities is returned cleaned as-is.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CleanString(s, 0)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanString(s, 0)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		p.AppendHtml("\n")
	})
	return CleanString(doc.Text(), 0)
}

// CleanRecord applies conservative sanitization to all strings in the record.
func CleanRecord(r *schema.Record) {
	if r == nil {
		return
	}
	r.Title = CleanString(r.Title, 512)
	r.Authors = CleanAuthors(r.Authors)
	r.ISBN = CleanString(r.ISBN, 16)
	r.ISBN13 = CleanString(r.ISBN13, 16)
	r.Publisher = CleanString(r.Publisher, 256)
	r.Comments = PlainText(r.Comments)
	r.Tags = CleanTags(r.Tags)
	r.CoverURL = CleanURL(r.CoverURL)
	if r.Series != nil {
		r.Series.Name = CleanString(r.Series.Name, 256)
		if r.Series.Name == "" {
			r.Series = nil
		}
	}
}
