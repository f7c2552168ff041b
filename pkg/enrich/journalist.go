package enrich

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// JournalistProfile is the Perigon journalist record used to enrich a
// reporter.
type JournalistProfile struct {
	Name     string
	Title    string
	Bio      string
	Twitter  string
	LinkedIn string
	Location string
	Topics   []string
	Sources  []string
}

type JournalistClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewJournalistClient(apiKey string) *JournalistClient {
	return &JournalistClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// FindJournalist looks up the best Perigon match for an author name,
// optionally narrowed by topic. Returns nil when there is no match.
func (c *JournalistClient) FindJournalist(name, topic string) (*JournalistProfile, error) {
	if name == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("size", "1")
	params.Set("apiKey", c.apiKey)
	if topic != "" {
		params.Set("topic", topic)
	}

	resp, err := c.httpClient.Get("https://api.goperigon.com/v1/journalists?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("perigon journalists fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("perigon journalists request failed (%d)", resp.StatusCode)
	}

	var raw journalistResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("perigon journalists decode: %w", err)
	}

	items := raw.Journalists
	if len(items) == 0 {
		items = raw.Data
	}
	if len(items) == 0 {
		items = raw.Results
	}
	if len(items) == 0 {
		return nil, nil
	}

	j := items[0]

	profile := &JournalistProfile{
		Name:     j.Name,
		Title:    j.Title,
		Bio:      j.Bio,
		Twitter:  j.Twitter,
		LinkedIn: j.LinkedIn,
		Location: j.Location,
		Topics:   j.Topics,
		Sources:  j.Sources,
	}
	if profile.Name == "" {
		profile.Name = name
	}
	if profile.Title == "" {
		profile.Title = j.Role
	}
	if profile.Twitter == "" {
		profile.Twitter = j.TwitterHandle
	}
	if profile.LinkedIn == "" {
		profile.LinkedIn = j.LinkedInURL
	}
	if len(profile.Topics) == 0 {
		profile.Topics = j.TopTopics
	}
	if len(profile.Sources) == 0 {
		profile.Sources = j.TopSources
	}

	return profile, nil
}

type journalistResponse struct {
	Journalists []journalistRecord `json:"journalists"`
	Data        []journalistRecord `json:"data"`
	Results     []journalistRecord `json:"results"`
}

type journalistRecord struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Role          string   `json:"role"`
	Bio           string   `json:"bio"`
	Twitter       string   `json:"twitter"`
	TwitterHandle string   `json:"twitter_handle"`
	LinkedIn      string   `json:"linkedin"`
	LinkedInURL   string   `json:"linkedin_url"`
	Location      string   `json:"location"`
	Topics        []string `json:"topics"`
	TopTopics     []string `json:"top_topics"`
	Sources       []string `json:"sources"`
	TopSources    []string `json:"top_sources"`
}
