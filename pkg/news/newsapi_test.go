package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestNewsAPISearch(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			{
				"title":       "Ransomware Gang Hits Hospital Network",
				"url":         "https://example.com/ransomware-hospital",
				"author":      "Jane Smith",
				"publishedAt": "2026-08-20T09:30:00Z",
				"source":      map[string]interface{}{"name": "Reuters"},
			},
			{
				"title":       "",
				"url":         "https://example.com/no-title",
				"author":      "Nobody",
				"publishedAt": "2026-08-20T10:00:00Z",
				"source":      map[string]interface{}{"name": "Reuters"},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &NewsAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	articles, err := client.Search(Query{Topic: "ransomware", Limit: 10, SortBy: SortByRelevancy})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "Ransomware Gang Hits Hospital Network", a.Title)
	assert.Equal(t, "https://example.com/ransomware-hospital", a.URL)
	assert.Equal(t, "Reuters", a.Outlet)
	assert.Equal(t, "Jane Smith", a.Author)
	assert.Equal(t, "NewsAPI", a.Source)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.August, a.PublishedAt.Month())
	assert.Equal(t, []string{"cybersecurity"}, a.Topics)
}

func TestNewsAPISearch_UpgradeRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUpgradeRequired)
		json.NewEncoder(w).Encode(map[string]string{"message": "upgrade your plan"})
	}))
	defer srv.Close()

	client := &NewsAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Search(Query{Topic: "anything", Limit: 10})

	apiErr, ok := err.(*NewsAPIError)
	assert.Equal(t, true, ok)
	assert.Equal(t, http.StatusUpgradeRequired, apiErr.StatusCode)
}

func TestNewsAPISearch_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &NewsAPIClient{
		apiKey:     "bad-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Search(Query{Topic: "anything", Limit: 10})

	apiErr, ok := err.(*NewsAPIError)
	assert.Equal(t, true, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "NewsAPI returned 401 (Unauthorized). Check NEWS_API_KEY.", apiErr.Message)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
