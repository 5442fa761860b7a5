package aladin

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"aladin/src/internal/config"
	"aladin/src/internal/dates"
	"aladin/src/internal/logging"
	"aladin/src/internal/names"
	"aladin/src/internal/normalize"
	"aladin/src/internal/plugin"
	"aladin/src/internal/query"
	"aladin/src/internal/sanitize"
	"aladin/src/internal/schema"
	"aladin/src/internal/stringsx"
	"aladin/src/internal/xmltree"
)

// XMLSource reads the catalog's XML output. Compared to the JSON variant it
// also extracts tags, rating, cover URL and the structured series.
type XMLSource struct {
	c *client
}

// NewXML builds the XML variant.
func NewXML(cfg config.Config, opts ...Option) *XMLSource {
	return &XMLSource{c: newClient(cfg, opts)}
}

func (s *XMLSource) Info() plugin.Info {
	return info("xml", "rating", "tags", "identifier:"+schema.IDAladinSeries)
}

func (s *XMLSource) Identify(ctx context.Context, log *zap.Logger, results plugin.Queue[schema.Record], abort plugin.Abort, req plugin.Request) error {
	log = logging.OrNop(log).With(zap.String("source", Name), zap.String("variant", config.VariantXML))
	q, err := query.Build(s.c.cfg.APIKey, req.Title, req.Authors, req.Identifiers)
	if err != nil {
		return err
	}
	timeout := s.c.timeout(req)
	if q.Mode == query.ModeISBN {
		s.emit(log, s.c.lookup(ctx, log, q.Text(), q.ISBNKind, query.OutputXML, timeout), results, abort)
		return nil
	}
	for _, target := range query.SearchTargets {
		if plugin.Aborted(abort) {
			return nil
		}
		if !s.emit(log, s.c.search(ctx, log, q, target, query.OutputXML, timeout), results, abort) {
			return nil
		}
	}
	return nil
}

func (s *XMLSource) DownloadCover(ctx context.Context, log *zap.Logger, covers plugin.Queue[plugin.Cover], abort plugin.Abort, req plugin.Request, getBestCover bool) {
	log = logging.OrNop(log).With(zap.String("source", Name), zap.String("variant", config.VariantXML))
	resolveCover(ctx, log, s.c, s, covers, abort, req)
}

func (s *XMLSource) emit(log *zap.Logger, body []byte, results plugin.Queue[schema.Record], abort plugin.Abort) bool {
	for _, el := range xmlItems(log, body) {
		if plugin.Aborted(abort) {
			log.Debug("identify aborted")
			return false
		}
		rec, err := xmlRecord(el)
		if err != nil {
			log.Debug("skipping item", zap.String("item_id", xmltree.TextOrAttr(el, "itemId")), zap.Error(err))
			continue
		}
		results.Put(rec)
	}
	return true
}

func (s *XMLSource) lookupCover(ctx context.Context, log *zap.Logger, itemID, itemIDType string, timeout time.Duration) string {
	return firstXMLCover(xmlItems(log, s.c.lookup(ctx, log, itemID, itemIDType, query.OutputXML, timeout)))
}

func (s *XMLSource) searchCover(ctx context.Context, log *zap.Logger, q query.SearchQuery, target string, timeout time.Duration) string {
	return firstXMLCover(xmlItems(log, s.c.search(ctx, log, q, target, query.OutputXML, timeout)))
}

func firstXMLCover(items []*etree.Element) string {
	for _, el := range items {
		if u := sanitize.CleanURL(xmltree.Text(el, "cover")); u != "" {
			return u
		}
	}
	return ""
}

// xmlItems parses body and returns its item elements. Error documents and
// malformed bodies yield nil.
func xmlItems(log *zap.Logger, body []byte) []*etree.Element {
	if len(body) == 0 {
		return nil
	}
	root, err := xmltree.Parse(body)
	if err != nil {
		log.Warn("malformed xml response", zap.Error(err))
		return nil
	}
	if root.Tag == "error" {
		log.Warn("catalog returned an error",
			zap.String("code", xmltree.Text(root, "errorCode")),
			zap.String("message", xmltree.Text(root, "errorMessage")),
		)
		return nil
	}
	return root.SelectElements("item")
}

func xmlRecord(el *etree.Element) (schema.Record, error) {
	isbn13 := xmltree.Text(el, "isbn13")
	rec := schema.Record{
		Title:     xmltree.Text(el, "title"),
		Authors:   names.Authors(xmltree.Text(el, "author")),
		ISBN:      stringsx.FirstNonEmpty(isbn13, xmltree.Text(el, "isbn")),
		ISBN13:    isbn13,
		Publisher: xmltree.Text(el, "publisher"),
		PubDate:   dates.PubDate(stringsx.FirstNonEmpty(xmltree.Text(el, "pubDate"), xmltree.Text(el, "pubdate"))),
		Languages: []string{schema.Korean},
		Comments:  xmltree.Text(el, "description"),
		Rating:    normalize.RescaleRating(xmltree.Text(el, "customerReviewRank")),
		Tags:      normalize.CategoryTags(xmltree.Text(el, "categoryName")),
		CoverURL:  sanitize.CleanURL(xmltree.Text(el, "cover")),
		Source:    Name,
	}
	if si := el.SelectElement("seriesInfo"); si != nil {
		if name := xmltree.Text(si, "seriesName"); name != "" {
			rec.Series = &schema.Series{Name: name}
		}
		rec.SetIdentifier(schema.IDAladinSeries, xmltree.Text(si, "seriesId"))
	}
	rec.SetIdentifier(schema.IDAladin, xmltree.TextOrAttr(el, "itemId"))
	rec.SetIdentifier(schema.IDISBN, rec.ISBN)
	rec.SetIdentifier(schema.IDISBN13, isbn13)
	sanitize.CleanRecord(&rec)
	if rec.Title == "" {
		return schema.Record{}, errNoTitle
	}
	if err := rec.Validate(); err != nil {
		return schema.Record{}, fmt.Errorf("invalid record: %w", err)
	}
	return rec, nil
}
