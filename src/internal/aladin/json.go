package aladin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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
)

// JSONSource reads the catalog's JSON ("js") output.
type JSONSource struct {
	c *client
}

// NewJSON builds the JSON variant.
func NewJSON(cfg config.Config, opts ...Option) *JSONSource {
	return &JSONSource{c: newClient(cfg, opts)}
}

func (s *JSONSource) Info() plugin.Info { return info("json") }

// Identify looks the book up by ISBN with a single ItemLookUp, or otherwise
// runs the keyword search against the Book and then the eBook target.
func (s *JSONSource) Identify(ctx context.Context, log *zap.Logger, results plugin.Queue[schema.Record], abort plugin.Abort, req plugin.Request) error {
	log = logging.OrNop(log).With(zap.String("source", Name), zap.String("variant", config.VariantJSON))
	q, err := query.Build(s.c.cfg.APIKey, req.Title, req.Authors, req.Identifiers)
	if err != nil {
		return err
	}
	timeout := s.c.timeout(req)
	if q.Mode == query.ModeISBN {
		body := s.c.lookup(ctx, log, q.Text(), q.ISBNKind, query.OutputJSON, timeout)
		s.emit(log, body, results, abort)
		return nil
	}
	for _, target := range query.SearchTargets {
		if plugin.Aborted(abort) {
			return nil
		}
		body := s.c.search(ctx, log, q, target, query.OutputJSON, timeout)
		if !s.emit(log, body, results, abort) {
			return nil
		}
	}
	return nil
}

// DownloadCover resolves and fetches the cover; failures are logged only.
func (s *JSONSource) DownloadCover(ctx context.Context, log *zap.Logger, covers plugin.Queue[plugin.Cover], abort plugin.Abort, req plugin.Request, getBestCover bool) {
	log = logging.OrNop(log).With(zap.String("source", Name), zap.String("variant", config.VariantJSON))
	resolveCover(ctx, log, s.c, s, covers, abort, req)
}

// emit normalizes and enqueues every item in body. It returns false when
// processing stopped because abort was set.
func (s *JSONSource) emit(log *zap.Logger, body []byte, results plugin.Queue[schema.Record], abort plugin.Abort) bool {
	for _, it := range decodeJSONItems(log, body) {
		if plugin.Aborted(abort) {
			log.Debug("identify aborted")
			return false
		}
		rec, err := it.record()
		if err != nil {
			log.Debug("skipping item", zap.String("item_id", string(it.ItemID)), zap.Error(err))
			continue
		}
		results.Put(rec)
	}
	return true
}

func (s *JSONSource) lookupCover(ctx context.Context, log *zap.Logger, itemID, itemIDType string, timeout time.Duration) string {
	return firstJSONCover(decodeJSONItems(log, s.c.lookup(ctx, log, itemID, itemIDType, query.OutputJSON, timeout)))
}

func (s *JSONSource) searchCover(ctx context.Context, log *zap.Logger, q query.SearchQuery, target string, timeout time.Duration) string {
	return firstJSONCover(decodeJSONItems(log, s.c.search(ctx, log, q, target, query.OutputJSON, timeout)))
}

func firstJSONCover(items []jsonItem) string {
	for _, it := range items {
		if u := sanitize.CleanURL(it.Cover); u != "" {
			return u
		}
	}
	return ""
}

// flexString accepts a JSON string or number; anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
	}
	return nil
}

type jsonResponse struct {
	ErrorCode    flexString `json:"errorCode"`
	ErrorMessage string     `json:"errorMessage"`
	Items        []jsonItem `json:"item"`
}

type jsonItem struct {
	ItemID      flexString      `json:"itemId"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	PubDate     string          `json:"pubDate"`
	PublishDate string          `json:"publishDate"`
	Description string          `json:"description"`
	ISBN        string          `json:"isbn"`
	ISBN13      string          `json:"isbn13"`
	Cover       string          `json:"cover"`
	Publisher   string          `json:"publisher"`
	Series      string          `json:"series"`
	SeriesInfo  json.RawMessage `json:"seriesInfo"`
	SubInfo     json.RawMessage `json:"subInfo"`
}

type jsonSubInfo struct {
	Authors []struct {
		AuthorName string `json:"authorName"`
		AuthorType string `json:"authorType"`
	} `json:"authors"`
}

var errNoTitle = errors.New("item has no title")

// decodeJSONItems returns nil for absent, malformed or error responses.
func decodeJSONItems(log *zap.Logger, body []byte) []jsonItem {
	if len(body) == 0 {
		return nil
	}
	var r jsonResponse
	if err := json.Unmarshal(body, &r); err != nil {
		log.Warn("malformed json response", zap.Error(err))
		return nil
	}
	if r.ErrorCode != "" {
		log.Warn("catalog returned an error",
			zap.String("code", string(r.ErrorCode)),
			zap.String("message", r.ErrorMessage),
		)
		return nil
	}
	return r.Items
}

// authors prefers the structured author list of a lookup response and falls
// back to splitting the display string.
func (it jsonItem) authors() []string {
	var sub jsonSubInfo
	if len(it.SubInfo) > 0 && json.Unmarshal(it.SubInfo, &sub) == nil && len(sub.Authors) > 0 {
		var out []string
		for _, a := range sub.Authors {
			if a.AuthorType == "author" && a.AuthorName != "" {
				out = append(out, a.AuthorName)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return names.Authors(it.Author)
}

// seriesString is the combined "<name> <index>" value, taken from the flat
// field or from seriesInfo.seriesName.
func (it jsonItem) seriesString() string {
	var info struct {
		SeriesName string `json:"seriesName"`
	}
	if len(it.SeriesInfo) > 0 {
		_ = json.Unmarshal(it.SeriesInfo, &info)
	}
	return stringsx.FirstNonEmpty(it.Series, info.SeriesName)
}

func (it jsonItem) record() (schema.Record, error) {
	rec := schema.Record{
		Title:     it.Title,
		Authors:   it.authors(),
		ISBN:      stringsx.FirstNonEmpty(it.ISBN13, it.ISBN),
		ISBN13:    it.ISBN13,
		Publisher: it.Publisher,
		PubDate:   dates.PubDate(stringsx.FirstNonEmpty(it.PubDate, it.PublishDate)),
		Languages: []string{schema.Korean},
		Comments:  it.Description,
		Relevance: jsonRelevance,
		Source:    Name,
	}
	if raw := it.seriesString(); raw != "" {
		name, idx := normalize.SplitSeries(raw)
		rec.Series = &schema.Series{Name: name, Index: idx}
	}
	rec.SetIdentifier(schema.IDAladin, string(it.ItemID))
	rec.SetIdentifier(schema.IDISBN, rec.ISBN)
	rec.SetIdentifier(schema.IDISBN13, it.ISBN13)
	sanitize.CleanRecord(&rec)
	if rec.Title == "" {
		return schema.Record{}, errNoTitle
	}
	if err := rec.Validate(); err != nil {
		return schema.Record{}, fmt.Errorf("invalid record: %w", err)
	}
	return rec, nil
}
