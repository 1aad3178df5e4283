// Package search translates the filter form — free-text search, a language
// select and a multi-select tag filter — into list requests and into the
// shareable URL query that mirrors them.
//
// The query string is canonical: fixed key order (search,
// programmingLanguage, tags, page), defaults omitted, tags comma-joined
// with the comma left unescaped. Two users looking at the same filtered
// page therefore share byte-identical URLs.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sakif/snipshare/internal/api"
)

// AllLanguages is the language select's "no filter" sentinel.
const AllLanguages = "all"

// Filters is the user-entered filter state. The zero value means
// "everything": empty search, any language, any tags.
type Filters struct {
	Search              string
	ProgrammingLanguage string // "" and "all" are both unfiltered
	Tags                []string
}

// languageActive reports whether the language filter is in effect.
func (f Filters) languageActive() bool {
	return f.ProgrammingLanguage != "" && f.ProgrammingLanguage != AllLanguages
}

// Query builds the API request for these filters at the given page.
func (f Filters) Query(page, limit int) api.ListQuery {
	lang := ""
	if f.languageActive() {
		lang = f.ProgrammingLanguage
	}
	return api.ListQuery{
		Search:              strings.TrimSpace(f.Search),
		ProgrammingLanguage: lang,
		Tags:                f.Tags,
		Page:                page,
		Limit:               limit,
	}
}

// Submit returns the canonical shareable query for a fresh search.
// A new search always lands on page 1 — the old page number is meaningless
// against a different result set.
func Submit(f Filters) string {
	return Encode(f, 1)
}

// Encode renders filters plus a page number as the canonical query string.
// Only non-default fields appear; page is always present.
//
// url.Values.Encode sorts keys alphabetically and escapes commas, neither
// of which matches the canonical form, so the string is assembled by hand
// over the fixed field order.
func Encode(f Filters, page int) string {
	if page < 1 {
		page = 1
	}

	var parts []string
	if s := strings.TrimSpace(f.Search); s != "" {
		parts = append(parts, "search="+url.QueryEscape(s))
	}
	if f.languageActive() {
		parts = append(parts, "programmingLanguage="+url.QueryEscape(f.ProgrammingLanguage))
	}
	if len(f.Tags) > 0 {
		escaped := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			escaped[i] = url.QueryEscape(tag)
		}
		parts = append(parts, "tags="+strings.Join(escaped, ","))
	}
	parts = append(parts, "page="+strconv.Itoa(page))
	return strings.Join(parts, "&")
}

// Parse reads filters and page back out of a query string (the view-mount
// path: a page view starts from whatever URL it was opened with).
// Unknown parameters are ignored; a malformed query yields the zero
// filters on page 1 rather than an error — a bad shared link should still
// open the unfiltered view.
func Parse(query string) (Filters, int) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return Filters{}, 1
	}

	f := Filters{
		Search:              values.Get("search"),
		ProgrammingLanguage: values.Get("programmingLanguage"),
	}
	if raw := values.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}

	page := 1
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 1 {
		page = p
	}
	return f, page
}

// WithPage re-encodes a query with only the page number changed. This is
// the pagination path: clicking page n must preserve every active filter
// exactly as the current URL carries it.
func WithPage(query string, page int) string {
	f, _ := Parse(query)
	return Encode(f, page)
}
