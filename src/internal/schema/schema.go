package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Identifier kinds understood by the host.
const (
	IDISBN         = "isbn"
	IDISBN13       = "isbn13"
	IDAladin       = "aladin"
	IDAladinSeries = "aladin_series"
)

// Korean is the only language the catalog publishes metadata in.
const Korean = "Korean"

// Record is one normalized search result handed to the host.
type Record struct {
	Title       string            `yaml:"title" json:"title"`
	Authors     []string          `yaml:"authors,omitempty" json:"authors,omitempty"`
	ISBN        string            `yaml:"isbn,omitempty" json:"isbn,omitempty"`
	ISBN13      string            `yaml:"isbn13,omitempty" json:"isbn13,omitempty"`
	Publisher   string            `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Series      *Series           `yaml:"series,omitempty" json:"series,omitempty"`
	PubDate     *time.Time        `yaml:"pubdate,omitempty" json:"pubdate,omitempty"`
	Languages   []string          `yaml:"languages" json:"languages"`
	Comments    string            `yaml:"comments,omitempty" json:"comments,omitempty"`
	Rating      *float64          `yaml:"rating,omitempty" json:"rating,omitempty"`
	Tags        []string          `yaml:"tags,omitempty" json:"tags,omitempty"`
	Identifiers map[string]string `yaml:"identifiers,omitempty" json:"identifiers,omitempty"`
	CoverURL    string            `yaml:"cover_url,omitempty" json:"cover_url,omitempty"`
	Relevance   int               `yaml:"relevance" json:"relevance"`
	Source      string            `yaml:"source" json:"source"`
}

// Series is a series name with an optional numeric position.
type Series struct {
	Name  string  `yaml:"name" json:"name"`
	Index *string `yaml:"index,omitempty" json:"index,omitempty"`
}

// SetIdentifier records value under kind, ignoring blank values.
func (r *Record) SetIdentifier(kind, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if r.Identifiers == nil {
		r.Identifiers = map[string]string{}
	}
	r.Identifiers[kind] = value
}

// Identifier returns the value recorded for kind, or "".
func (r Record) Identifier(kind string) string {
	return r.Identifiers[kind]
}

// Validate checks the invariants every emitted record must hold.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	for i, a := range r.Authors {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("authors[%d] is empty", i)
		}
	}
	seen := make(map[string]bool, len(r.Tags))
	for _, t := range r.Tags {
		if seen[t] {
			return fmt.Errorf("duplicate tag: %s", t)
		}
		seen[t] = true
	}
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return fmt.Errorf("rating out of range: %v", *r.Rating)
	}
	if r.Series != nil && strings.TrimSpace(r.Series.Name) == "" {
		return errors.New("series.name is required when series is set")
	}
	return nil
}
