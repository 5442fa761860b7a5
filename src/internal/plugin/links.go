package plugin

import (
	"fmt"
	"net/url"
	"strings"

	"aladin/src/internal/schema"
)

// LinkTemplates maps identifier kinds to browsable URL templates with one %s.
var LinkTemplates = map[string]string{
	schema.IDAladin:       "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=%s",
	schema.IDAladinSeries: "https://www.aladin.co.kr/shop/common/wseriesitem.aspx?SRID=%s",
}

// Link fills the template for kind. ok is false for unknown kinds or blank values.
func Link(kind, value string) (string, bool) {
	tmpl, ok := LinkTemplates[kind]
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", false
	}
	return fmt.Sprintf(tmpl, url.QueryEscape(value)), true
}

// BookURL returns the item page for the book when its catalog id is known.
func BookURL(identifiers map[string]string) (kind, value, link string, ok bool) {
	value = strings.TrimSpace(identifiers[schema.IDAladin])
	if link, ok = Link(schema.IDAladin, value); !ok {
		return "", "", "", false
	}
	return schema.IDAladin, value, link, true
}

// IDFromURL parses an item page URL back into (kind, value).
func IDFromURL(raw string) (kind, value string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.HasSuffix(strings.ToLower(u.Host), "aladin.co.kr") {
		return "", "", false
	}
	q := u.Query()
	switch {
	case strings.EqualFold(u.Path, "/shop/wproduct.aspx") && q.Get("ItemId") != "":
		return schema.IDAladin, q.Get("ItemId"), true
	case strings.EqualFold(u.Path, "/shop/common/wseriesitem.aspx") && q.Get("SRID") != "":
		return schema.IDAladinSeries, q.Get("SRID"), true
	}
	return "", "", false
}
