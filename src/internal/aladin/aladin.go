// Package aladin implements the Aladin catalog metadata source in two
// variants: one reading the JSON output format, one reading XML.
package aladin

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"aladin/src/internal/config"
	"aladin/src/internal/httpx"
	"aladin/src/internal/plugin"
	"aladin/src/internal/query"
	"aladin/src/internal/schema"
)

// Name is the source name reported to the host.
const Name = "Aladin"

const (
	searchEndpoint = "/ItemSearch.aspx"
	lookupEndpoint = "/ItemLookUp.aspx"
)

// jsonRelevance is assigned to every JSON-variant record; ordering among
// results is not modelled.
const jsonRelevance = 1

// Option customizes a source.
type Option func(*client)

// WithHTTPClient replaces the transport; tests inject fakes here.
func WithHTTPClient(d httpx.Doer) Option {
	return func(c *client) { c.doer = d }
}

// New returns the source for cfg.Variant.
func New(cfg config.Config, opts ...Option) plugin.Source {
	if cfg.Variant == config.VariantXML {
		return NewXML(cfg, opts...)
	}
	return NewJSON(cfg, opts...)
}

// client is the request side shared by both variants.
type client struct {
	cfg   config.Config
	doer  httpx.Doer
	fetch *httpx.Fetcher
}

func newClient(cfg config.Config, opts []Option) *client {
	c := &client{cfg: cfg}
	for _, o := range opts {
		o(c)
	}
	c.fetch = httpx.NewFetcher(c.doer, cfg.RequestsPerSecond, cfg.UserAgent)
	return c
}

func (c *client) endpoint(path string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultBaseURL
	}
	return base + path
}

// timeout prefers the per-call value over the configured default.
func (c *client) timeout(req plugin.Request) time.Duration {
	if req.Timeout > 0 {
		return req.Timeout
	}
	return c.cfg.Timeout
}

// search runs one ItemSearch; a nil body means the request failed and was logged.
func (c *client) search(ctx context.Context, log *zap.Logger, q query.SearchQuery, target, output string, timeout time.Duration) []byte {
	body, err := c.fetch.Get(ctx, c.endpoint(searchEndpoint), q.SearchParams(target, output, c.cfg.MaxResults), timeout)
	if err != nil {
		log.Warn("item search failed",
			zap.String("mode", q.Mode.String()),
			zap.String("target", target),
			zap.Error(err),
		)
		return nil
	}
	return body
}

// lookup runs one ItemLookUp.
func (c *client) lookup(ctx context.Context, log *zap.Logger, itemID, itemIDType, output string, timeout time.Duration) []byte {
	params := query.LookupParams(c.cfg.APIKey, itemID, itemIDType, output)
	body, err := c.fetch.Get(ctx, c.endpoint(lookupEndpoint), params, timeout)
	if err != nil {
		log.Warn("item lookup failed",
			zap.String("item_id", itemID),
			zap.String("item_id_type", itemIDType),
			zap.Error(err),
		)
		return nil
	}
	return body
}

func info(variant string, extraFields ...string) plugin.Info {
	fields := []string{
		"title", "authors", "pubdate", "comments", "publisher", "series", "series_index", "languages",
		"identifier:" + schema.IDISBN, "identifier:" + schema.IDISBN13, "identifier:" + schema.IDAladin,
	}
	return plugin.Info{
		Name:                  Name,
		Version:               [3]int{1, 0, 0},
		Description:           "Downloads metadata and covers from Aladin (" + variant + ")",
		Capabilities:          []string{"identify", "cover"},
		TouchedFields:         append(fields, extraFields...),
		PreferResultsWithISBN: true,
	}
}
