package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/daverett/reporter-finder/pkg/topics"
)

// NewsAPIError carries the upstream status code so callers can tell
// plan restrictions apart from transient failures.
type NewsAPIError struct {
	StatusCode int
	Message    string
}

func (e *NewsAPIError) Error() string {
	return e.Message
}

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Search(q Query) ([]Article, error) {
	params := url.Values{}
	params.Set("q", q.Topic)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(q.Limit))
	params.Set("sortBy", q.SortBy)
	params.Set("apiKey", c.apiKey)
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02T15:04:05"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02T15:04:05"))
	}

	resp, err := c.httpClient.Get("https://newsapi.org/v2/everything?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newsAPIStatusError(resp)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.URL == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       title,
			URL:         item.URL,
			Outlet:      item.Source.Name,
			Author:      strings.TrimSpace(item.Author),
			PublishedAt: publishedAt,
			// NewsAPI has no native categories.
			Topics: topics.InferFromText(title, nil, topics.DefaultMaxBeats),
			Source: c.Name(),
		})
	}

	return articles, nil
}

func newsAPIStatusError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	msg := strings.TrimSpace(body.Message)
	if msg == "" {
		msg = strings.TrimSpace(body.Code)
	}

	switch resp.StatusCode {
	case http.StatusUpgradeRequired:
		return &NewsAPIError{
			StatusCode: resp.StatusCode,
			Message: "NewsAPI returned 426 (Upgrade Required). On free/dev plans this often happens when " +
				"the request isn't allowed (e.g., too old date range or production restrictions).",
		}
	case http.StatusUnauthorized:
		return &NewsAPIError{
			StatusCode: resp.StatusCode,
			Message:    "NewsAPI returned 401 (Unauthorized). Check NEWS_API_KEY.",
		}
	case http.StatusTooManyRequests:
		return &NewsAPIError{
			StatusCode: resp.StatusCode,
			Message:    "NewsAPI returned 429 (Rate limit). Try again later.",
		}
	}

	return &NewsAPIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(fmt.Sprintf("NewsAPI request failed (%d). %s", resp.StatusCode, msg)),
	}
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	Author      string        `json:"author"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
