package aladin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"aladin/src/internal/normalize"
	"aladin/src/internal/plugin"
	"aladin/src/internal/query"
	"aladin/src/internal/schema"
)

// coverFinder is implemented by both variants; each parses its own format.
type coverFinder interface {
	lookupCover(ctx context.Context, log *zap.Logger, itemID, itemIDType string, timeout time.Duration) string
	searchCover(ctx context.Context, log *zap.Logger, q query.SearchQuery, target string, timeout time.Duration) string
}

// findCoverURL tries the catalog id, then the ISBN, then a keyword search,
// stopping at the first non-empty URL.
func findCoverURL(ctx context.Context, log *zap.Logger, c *client, f coverFinder, req plugin.Request) string {
	timeout := c.timeout(req)
	if id := strings.TrimSpace(req.Identifiers[schema.IDAladin]); id != "" {
		if u := f.lookupCover(ctx, log, id, query.ItemIDAladin, timeout); u != "" {
			return u
		}
	}
	if isbn := query.CleanISBN(req.Identifiers[schema.IDISBN13]); isbn != "" {
		if u := f.lookupCover(ctx, log, isbn, query.ItemIDISBN13, timeout); u != "" {
			return u
		}
	}
	if isbn := query.CleanISBN(req.Identifiers[schema.IDISBN]); isbn != "" {
		kind := query.ItemIDISBN
		if len(isbn) == 13 {
			kind = query.ItemIDISBN13
		}
		if u := f.lookupCover(ctx, log, isbn, kind, timeout); u != "" {
			return u
		}
	}
	q, err := query.Build(c.cfg.APIKey, req.Title, req.Authors, nil)
	if err != nil {
		return ""
	}
	return f.searchCover(ctx, log, q, query.TargetBook, timeout)
}

// resolveCover finds, upgrades and downloads the cover, then enqueues it.
// Every failure ends the call quietly.
func resolveCover(ctx context.Context, log *zap.Logger, c *client, f coverFinder, covers plugin.Queue[plugin.Cover], abort plugin.Abort, req plugin.Request) {
	raw := findCoverURL(ctx, log, c, f, req)
	if raw == "" {
		log.Info("no cover url found")
		return
	}
	if plugin.Aborted(abort) {
		return
	}
	u := normalize.UpgradeCoverURL(raw)
	data, err := c.fetch.Get(ctx, u, nil, c.timeout(req))
	if err != nil {
		log.Warn("cover download failed", zap.String("url", u), zap.Error(err))
		return
	}
	if len(data) == 0 {
		log.Warn("cover download returned no data", zap.String("url", u))
		return
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		log.Warn("cover is not an image", zap.String("url", u), zap.String("content_type", ct))
		return
	}
	covers.Put(plugin.Cover{Source: Name, URL: u, ContentType: ct, Data: data})
}
