package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daverett/reporter-finder/pkg/news"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSearcher struct {
	articles []news.Article
	err      error
	calls    int
	lastQ    news.Query
}

func (f *fakeSearcher) Search(q news.Query) ([]news.Article, error) {
	f.calls++
	f.lastQ = q
	return f.articles, f.err
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Get(key string) (string, bool, error) {
	val, ok := f.store[key]
	return val, ok, nil
}

func (f *fakeCache) Set(key string, value string, ttl time.Duration) error {
	f.store[key] = value
	return nil
}

func newSearchTestRouter(searcher Searcher, cache Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSearchHandler(searcher, cache)
	r.GET("/search", h.GetSearch)
	r.GET("/search/export", h.ExportSearch)
	return r
}

func sampleSearchArticles() []news.Article {
	return []news.Article{
		{
			Title:       "AI Diagnoses Outpace Doctors",
			URL:         "https://example.com/ai-diagnoses",
			Outlet:      "Reuters",
			Author:      "Jane Smith",
			PublishedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
			Topics:      []string{"ai", "health"},
			Source:      "NewsAPI",
		},
		{
			Title:       "Hospitals Adopt LLM Scribes",
			URL:         "https://example.com/llm-scribes",
			Outlet:      "Axios",
			Author:      "John Doe",
			PublishedAt: time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
			Topics:      []string{"ai"},
			Source:      "Perigon",
		},
	}
}

func TestGetSearch_ReturnsArticles(t *testing.T) {
	searcher := &fakeSearcher{articles: sampleSearchArticles()}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai+in+healthcare", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SearchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ai in healthcare", res.Topic)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "AI Diagnoses Outpace Doctors", res.Articles[0].Title)
	assert.Equal(t, []string{"ai", "health"}, res.Articles[0].Topics)
}

func TestGetSearch_MissingTopic(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, searcher.calls)
}

func TestGetSearch_InvalidSortBy(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai&sort_by=newest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSearch_LimitClamped(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai&limit=1000", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, maxSearchLimit, searcher.lastQ.Limit)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/search?topic=ai&limit=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, minSearchLimit, searcher.lastQ.Limit)
}

func TestGetSearch_InclusiveDateRange(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai&from=2026-08-01&to=2026-08-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), searcher.lastQ.From)
	assert.Equal(t, time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), searcher.lastQ.To)
}

func TestGetSearch_UpstreamFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("all sources down")}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetSearch_NewsAPIErrorSurfaced(t *testing.T) {
	searcher := &fakeSearcher{err: &news.NewsAPIError{
		StatusCode: http.StatusUpgradeRequired,
		Message:    "NewsAPI returned 426 (Upgrade Required).",
	}}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?topic=ai", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "NewsAPI returned 426 (Upgrade Required).", res["error"])
}

func TestGetSearch_UsesCache(t *testing.T) {
	searcher := &fakeSearcher{articles: sampleSearchArticles()}
	cache := newFakeCache()
	r := newSearchTestRouter(searcher, cache)

	url := "/search?topic=ai&from=2026-08-01&to=2026-08-10"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, searcher.calls)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	// Second request is served from cache.
	assert.Equal(t, 1, searcher.calls)

	var res SearchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Total)
}

func TestExportSearch_CSV(t *testing.T) {
	searcher := &fakeSearcher{articles: sampleSearchArticles()}
	r := newSearchTestRouter(searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search/export?topic=ai", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "Title,URL,Outlet,Author,PublishedAt", lines[0])
	assert.Equal(t, true, strings.Contains(lines[1], "AI Diagnoses Outpace Doctors"))
}
