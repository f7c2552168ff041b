package enrich

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFindJournalist(t *testing.T) {
	payload := map[string]interface{}{
		"journalists": []map[string]interface{}{
			{
				"name":     "Jane Smith",
				"title":    "Senior Tech Reporter",
				"bio":      "Covers AI and antitrust.",
				"twitter":  "@janesmith",
				"linkedin": "https://linkedin.com/in/janesmith",
				"location": "New York",
				"topics":   []string{"ai", "antitrust"},
				"sources":  []string{"Reuters"},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &JournalistClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	profile, err := client.FindJournalist("Jane Smith", "ai")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, profile)
	assert.Equal(t, "Jane Smith", profile.Name)
	assert.Equal(t, "Senior Tech Reporter", profile.Title)
	assert.Equal(t, "@janesmith", profile.Twitter)
	assert.Equal(t, []string{"ai", "antitrust"}, profile.Topics)
}

func TestFindJournalist_AlternateFieldNames(t *testing.T) {
	payload := map[string]interface{}{
		"results": []map[string]interface{}{
			{
				"role":           "Columnist",
				"twitter_handle": "@columnist",
				"linkedin_url":   "https://linkedin.com/in/columnist",
				"top_topics":     []string{"politics"},
				"top_sources":    []string{"Politico"},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &JournalistClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	profile, err := client.FindJournalist("Some Columnist", "")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, profile)
	// Name falls back to the query when the record has none.
	assert.Equal(t, "Some Columnist", profile.Name)
	assert.Equal(t, "Columnist", profile.Title)
	assert.Equal(t, "@columnist", profile.Twitter)
	assert.Equal(t, []string{"politics"}, profile.Topics)
	assert.Equal(t, []string{"Politico"}, profile.Sources)
}

func TestFindJournalist_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"journalists": []interface{}{}})
	}))
	defer srv.Close()

	client := &JournalistClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	profile, err := client.FindJournalist("Nobody", "")

	assert.Equal(t, nil, err)
	if profile != nil {
		t.Errorf("expected nil profile, got %+v", profile)
	}
}

func TestFindJournalist_EmptyName(t *testing.T) {
	client := NewJournalistClient("test-key")

	profile, err := client.FindJournalist("", "")

	assert.Equal(t, nil, err)
	if profile != nil {
		t.Errorf("expected nil profile, got %+v", profile)
	}
}
