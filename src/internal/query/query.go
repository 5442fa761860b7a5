package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"aladin/src/internal/schema"
	"aladin/src/internal/stringsx"
)

// ErrNoSearchTerms is returned when neither an ISBN, a title nor an author
// was supplied. Its text is shown to the user as is.
var ErrNoSearchTerms = errors.New("No title or author or ISBN found")

// APIVersion is sent with every request.
const APIVersion = "20131101"

// Mode selects how the catalog is queried.
type Mode int

const (
	ModeISBN Mode = iota + 1
	ModeTitleAuthor
	ModeTitle
	ModeAuthor
)

func (m Mode) String() string {
	switch m {
	case ModeISBN:
		return "isbn"
	case ModeTitleAuthor:
		return "title+author"
	case ModeTitle:
		return "title"
	case ModeAuthor:
		return "author"
	}
	return "unknown"
}

// Output formats understood by the catalog.
const (
	OutputJSON = "js"
	OutputXML  = "xml"
)

// Search targets queried in turn for keyword searches.
const (
	TargetBook  = "Book"
	TargetEBook = "eBook"
)

// SearchTargets is the order in which keyword searches run.
var SearchTargets = []string{TargetBook, TargetEBook}

// Item id kinds for lookups.
const (
	ItemIDISBN13 = "ISBN13"
	ItemIDISBN   = "ISBN"
	ItemIDAladin = "ItemId"
)

// optResult lists the optional response blocks we read.
const optResult = "authors,ratingInfo,categoryIdList"

// SearchQuery is an immutable description of one identify call.
type SearchQuery struct {
	Mode   Mode
	Terms  []string
	APIKey string
	// ISBNKind is ItemIDISBN13 or ItemIDISBN in ModeISBN.
	ISBNKind string
}

// Text is the query string sent to the catalog.
func (q SearchQuery) Text() string { return stringsx.JoinNonEmpty(" ", q.Terms...) }

// QueryType is the catalog's QueryType tag for keyword modes.
func (q SearchQuery) QueryType() string {
	switch q.Mode {
	case ModeTitle:
		return "Title"
	case ModeAuthor:
		return "Author"
	}
	return "Keyword"
}

// Build picks the query mode by priority: ISBN, title+authors, title,
// authors.
func Build(apiKey, title string, authors []string, identifiers map[string]string) (SearchQuery, error) {
	if isbn := CleanISBN(identifiers[schema.IDISBN13]); isbn != "" {
		return SearchQuery{Mode: ModeISBN, Terms: []string{isbn}, APIKey: apiKey, ISBNKind: isbnKind(isbn)}, nil
	}
	if isbn := CleanISBN(identifiers[schema.IDISBN]); isbn != "" {
		return SearchQuery{Mode: ModeISBN, Terms: []string{isbn}, APIKey: apiKey, ISBNKind: isbnKind(isbn)}, nil
	}
	title = strings.TrimSpace(title)
	author := stringsx.JoinNonEmpty(" ", authors...)
	switch {
	case title != "" && author != "":
		return SearchQuery{Mode: ModeTitleAuthor, Terms: []string{title, author}, APIKey: apiKey}, nil
	case title != "":
		return SearchQuery{Mode: ModeTitle, Terms: []string{title}, APIKey: apiKey}, nil
	case author != "":
		return SearchQuery{Mode: ModeAuthor, Terms: []string{author}, APIKey: apiKey}, nil
	}
	return SearchQuery{}, ErrNoSearchTerms
}

func isbnKind(isbn string) string {
	if len(isbn) == 13 {
		return ItemIDISBN13
	}
	return ItemIDISBN
}

// SearchParams builds ItemSearch parameters for one search target.
func (q SearchQuery) SearchParams(target, output string, maxResults int) url.Values {
	v := common(q.APIKey, output)
	v.Set("Query", q.Text())
	v.Set("QueryType", q.QueryType())
	v.Set("SearchTarget", target)
	if maxResults > 0 {
		v.Set("MaxResults", strconv.Itoa(maxResults))
	}
	return v
}

// LookupParams builds ItemLookUp parameters.
func LookupParams(apiKey, itemID, itemIDType, output string) url.Values {
	v := common(apiKey, output)
	v.Set("ItemId", itemID)
	v.Set("ItemIdType", itemIDType)
	return v
}

// LookupParams builds the ItemLookUp parameters for an ISBN-mode query.
func (q SearchQuery) LookupParams(output string) url.Values {
	return LookupParams(q.APIKey, q.Text(), q.ISBNKind, output)
}

func common(apiKey, output string) url.Values {
	v := url.Values{}
	v.Set("TTBKey", apiKey)
	v.Set("Output", output)
	v.Set("Version", APIVersion)
	v.Set("Cover", "Big")
	v.Set("OptResult", optResult)
	return v
}

// CleanISBN keeps digits and X. Inputs with no digits yield "".
func CleanISBN(isbn string) string {
	s := strings.ToUpper(strings.TrimSpace(isbn))
	core := make([]rune, 0, len(s))
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			core = append(core, r)
		case r == 'X':
			core = append(core, r)
		}
	}
	if digits == 0 {
		return ""
	}
	return string(core)
}
