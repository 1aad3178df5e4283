package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmit_OmitsDefaults(t *testing.T) {
	q := Submit(Filters{Search: "hooks", ProgrammingLanguage: "all"})
	assert.Equal(t, "search=hooks&page=1", q)
}

func TestSubmit_LanguageAndTags(t *testing.T) {
	q := Submit(Filters{
		ProgrammingLanguage: "python",
		Tags:                []string{"React", "Hooks"},
	})
	assert.Equal(t, "programmingLanguage=python&tags=React,Hooks&page=1", q)
}

func TestSubmit_AlwaysResetsToPageOne(t *testing.T) {
	// A fresh search never carries a page number over, whatever the caller
	// had been looking at.
	assert.Equal(t, "page=1", Submit(Filters{}))
}

func TestEncode_EscapesValuesButNotTagCommas(t *testing.T) {
	q := Encode(Filters{Search: "go generics", Tags: []string{"c++", "tips"}}, 2)
	assert.Equal(t, "search=go+generics&tags=c%2B%2B,tips&page=2", q)
}

func TestParse_RoundTrip(t *testing.T) {
	f := Filters{
		Search:              "hooks",
		ProgrammingLanguage: "python",
		Tags:                []string{"React", "Hooks"},
	}
	got, page := Parse(Encode(f, 3))
	assert.Equal(t, f, got)
	assert.Equal(t, 3, page)
}

func TestParse_LeadingQuestionMarkAndDefaults(t *testing.T) {
	f, page := Parse("?search=hooks")
	assert.Equal(t, "hooks", f.Search)
	assert.Empty(t, f.ProgrammingLanguage)
	assert.Empty(t, f.Tags)
	assert.Equal(t, 1, page)
}

func TestParse_BadPageFallsBackToOne(t *testing.T) {
	_, page := Parse("page=zero")
	assert.Equal(t, 1, page)

	_, page = Parse("page=-2")
	assert.Equal(t, 1, page)
}

func TestParse_MalformedQueryYieldsUnfiltered(t *testing.T) {
	f, page := Parse("%zz=bad")
	assert.Equal(t, Filters{}, f)
	assert.Equal(t, 1, page)
}

func TestWithPage_PreservesFilters(t *testing.T) {
	current := "search=hooks&programmingLanguage=python&tags=React,Hooks&page=4"
	assert.Equal(t,
		"search=hooks&programmingLanguage=python&tags=React,Hooks&page=7",
		WithPage(current, 7),
	)
}

func TestQuery_TranslatesAllSentinel(t *testing.T) {
	q := Filters{Search: " hooks ", ProgrammingLanguage: "all"}.Query(2, 10)
	assert.Equal(t, "hooks", q.Search)
	assert.Empty(t, q.ProgrammingLanguage)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.Limit)
}
