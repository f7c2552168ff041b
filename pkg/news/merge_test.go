package news

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeSource struct {
	name     string
	articles []Article
	err      error
}

func (f *fakeSource) Search(q Query) ([]Article, error) {
	return f.articles, f.err
}

func (f *fakeSource) Name() string {
	return f.name
}

func TestMultiSourceSearch_DedupesByURL(t *testing.T) {
	a := &fakeSource{name: "A", articles: []Article{
		{Title: "First", URL: "https://example.com/one", Author: "Jane"},
		{Title: "Second", URL: "https://example.com/two", Author: "John"},
	}}
	b := &fakeSource{name: "B", articles: []Article{
		{Title: "First again", URL: "https://EXAMPLE.com/one", Author: "Jane"},
		{Title: "Third", URL: "https://example.com/three", Author: "Amy"},
	}}

	merged := NewMultiSource(a, b)
	articles, err := merged.Search(Query{Topic: "test"})

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	// First occurrence wins.
	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "Second", articles[1].Title)
	assert.Equal(t, "Third", articles[2].Title)
}

func TestMultiSourceSearch_OneSourceFails(t *testing.T) {
	ok := &fakeSource{name: "OK", articles: []Article{
		{Title: "Survivor", URL: "https://example.com/survivor"},
	}}
	broken := &fakeSource{name: "Broken", err: errors.New("upstream down")}

	merged := NewMultiSource(broken, ok)
	articles, err := merged.Search(Query{Topic: "test"})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Survivor", articles[0].Title)
}

func TestMultiSourceSearch_AllSourcesFail(t *testing.T) {
	a := &fakeSource{name: "A", err: errors.New("down")}
	b := &fakeSource{name: "B", err: errors.New("also down")}

	merged := NewMultiSource(a, b)
	_, err := merged.Search(Query{Topic: "test"})

	assert.NotEqual(t, nil, err)
}

func TestMultiSourceSearch_NoSources(t *testing.T) {
	merged := NewMultiSource()
	_, err := merged.Search(Query{Topic: "test"})
	assert.NotEqual(t, nil, err)
}

func TestDedupeSkipsEmptyURLs(t *testing.T) {
	articles := dedupeByURL([][]Article{
		{
			{Title: "No URL"},
			{Title: "Has URL", URL: "https://example.com/a"},
		},
	})

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Has URL", articles[0].Title)
}
