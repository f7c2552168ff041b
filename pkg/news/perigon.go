package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxAuthorLen = 200

type PerigonClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewPerigonClient(apiKey string) *PerigonClient {
	return &PerigonClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *PerigonClient) Name() string {
	return "Perigon"
}

func (c *PerigonClient) Search(q Query) ([]Article, error) {
	sortBy := "date"
	if q.SortBy == SortByRelevancy {
		sortBy = "relevance"
	}

	params := url.Values{}
	params.Set("q", q.Topic)
	params.Set("language", "en")
	params.Set("size", strconv.Itoa(q.Limit))
	params.Set("sortBy", sortBy)
	params.Set("apiKey", c.apiKey)
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02T15:04:05"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02T15:04:05"))
	}

	resp, err := c.httpClient.Get("https://api.goperigon.com/v1/all?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("perigon fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		msg := strings.TrimSpace(body.Message)
		if msg == "" {
			msg = strings.TrimSpace(body.Error)
		}
		return nil, fmt.Errorf("perigon request failed (%d): %s", resp.StatusCode, msg)
	}

	var raw perigonResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("perigon decode: %w", err)
	}

	items := raw.Articles
	if len(items) == 0 {
		items = raw.Data
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = strings.TrimSpace(item.Headline)
		}
		link := item.URL
		if link == "" {
			link = item.Link
		}
		if title == "" || link == "" {
			continue
		}

		articles = append(articles, Article{
			Title:       title,
			URL:         link,
			Outlet:      item.Source.displayName(),
			Author:      item.authorName(),
			PublishedAt: item.publishedTime(),
			Topics:      item.topicNames(),
			Source:      c.Name(),
		})
	}

	return articles, nil
}

type perigonResponse struct {
	Articles []perigonArticle `json:"articles"`
	Data     []perigonArticle `json:"data"`
}

type perigonArticle struct {
	Title       string        `json:"title"`
	Headline    string        `json:"headline"`
	URL         string        `json:"url"`
	Link        string        `json:"link"`
	Author      string        `json:"author"`
	Authors     []string      `json:"authors"`
	PublishedAt string        `json:"publishedAt"`
	PubDate     string        `json:"pubDate"`
	Date        string        `json:"date"`
	Source      perigonSource `json:"source"`
	Topics      []perigonName `json:"topics"`
	Categories  []perigonName `json:"categories"`
}

// perigonSource appears both as an object and as a bare string
// depending on the endpoint revision.
type perigonSource struct {
	Name   string
	Domain string
}

func (s *perigonSource) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}
	var obj struct {
		Name   string `json:"name"`
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Name = obj.Name
	s.Domain = obj.Domain
	return nil
}

func (s perigonSource) displayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return strings.TrimSpace(s.Domain)
}

type perigonName struct {
	Name string `json:"name"`
}

func (a perigonArticle) authorName() string {
	if author := strings.TrimSpace(a.Author); author != "" {
		return author
	}
	if len(a.Authors) == 0 {
		return ""
	}
	joined := strings.Join(a.Authors, ", ")
	if len(joined) > maxAuthorLen {
		joined = joined[:maxAuthorLen]
	}
	return strings.TrimSpace(joined)
}

func (a perigonArticle) publishedTime() time.Time {
	for _, raw := range []string{a.PublishedAt, a.PubDate, a.Date} {
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func (a perigonArticle) topicNames() []string {
	var names []string
	for _, lists := range [][]perigonName{a.Topics, a.Categories} {
		for _, n := range lists {
			if name := strings.TrimSpace(n.Name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
