package handler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/daverett/reporter-finder/pkg/news"

	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 100
	minSearchLimit     = 20
	maxSearchLimit     = 200
	defaultRangeDays   = 30

	searchCacheTTL = 5 * time.Minute
)

type Searcher interface {
	Search(q news.Query) ([]news.Article, error)
}

// Cache is a string cache with TTL. A nil Cache disables caching.
type Cache interface {
	Get(key string) (string, bool, error)
	Set(key string, value string, ttl time.Duration) error
}

type SearchHandler struct {
	searcher Searcher
	cache    Cache
}

func NewSearchHandler(searcher Searcher, cache Cache) *SearchHandler {
	return &SearchHandler{searcher: searcher, cache: cache}
}

func (h *SearchHandler) GetSearch(c *gin.Context) {
	q, ok := parseSearchQuery(c)
	if !ok {
		return
	}

	articles, ok := h.searchCached(c, q)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Topic:    q.Topic,
		Articles: toArticleResponses(articles),
		Total:    len(articles),
	})
}

func (h *SearchHandler) ExportSearch(c *gin.Context) {
	q, ok := parseSearchQuery(c)
	if !ok {
		return
	}

	articles, ok := h.searchCached(c, q)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="articles.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"Title", "URL", "Outlet", "Author", "PublishedAt"})
	for _, a := range articles {
		w.Write([]string{a.Title, a.URL, a.Outlet, a.Author, formatTime(a.PublishedAt)})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		slog.Error("error writing articles CSV", "error", err)
	}
}

// searchCached consults the cache, falls back to the live search and
// stores the result. Responds with an error itself when ok is false.
func (h *SearchHandler) searchCached(c *gin.Context, q news.Query) ([]news.Article, bool) {
	key := searchCacheKey(q)

	if h.cache != nil {
		if cached, hit, err := h.cache.Get(key); err != nil {
			slog.Warn("search cache read failed", "error", err)
		} else if hit {
			var articles []news.Article
			if err := json.Unmarshal([]byte(cached), &articles); err == nil {
				return articles, true
			}
			slog.Warn("search cache entry corrupt, ignoring", "key", key)
		}
	}

	articles, err := h.searcher.Search(q)
	if err != nil {
		slog.Error("error searching news sources", "topic", q.Topic, "error", err)
		var apiErr *news.NewsAPIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
			return nil, false
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "News search failed"})
		return nil, false
	}

	if h.cache != nil {
		if data, err := json.Marshal(articles); err == nil {
			if err := h.cache.Set(key, string(data), searchCacheTTL); err != nil {
				slog.Warn("search cache write failed", "error", err)
			}
		}
	}

	return articles, true
}

func searchCacheKey(q news.Query) string {
	return fmt.Sprintf("reporterfinder:cache:search:%s|%d|%s|%s|%s",
		strings.ToLower(strings.TrimSpace(q.Topic)), q.Limit, q.SortBy,
		q.From.Format("2006-01-02"), q.To.Format("2006-01-02"))
}

// parseSearchQuery validates the shared search params. Responds with a
// 400 itself when ok is false.
func parseSearchQuery(c *gin.Context) (news.Query, bool) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a topic"})
		return news.Query{}, false
	}

	sortBy := c.DefaultQuery("sort_by", news.SortByRelevancy)
	if sortBy != news.SortByRelevancy && sortBy != news.SortByPopularity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_by must be relevancy or popularity"})
		return news.Query{}, false
	}

	limit := getQueryInt("limit", defaultSearchLimit, c)
	if limit < minSearchLimit {
		limit = minSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -defaultRangeDays)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return news.Query{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return news.Query{}, false
		}
		to = parsed
	}

	return news.Query{
		Topic:  topic,
		Limit:  limit,
		SortBy: sortBy,
		From:   from,
		// End of range is inclusive.
		To: to.AddDate(0, 0, 1),
	}, true
}

func toArticleResponses(articles []news.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, ArticleResponse{
			Title:       a.Title,
			URL:         a.URL,
			Outlet:      a.Outlet,
			Author:      a.Author,
			PublishedAt: formatTime(a.PublishedAt),
			Topics:      a.Topics,
			Source:      a.Source,
		})
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)

	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryBool(name string, c *gin.Context) bool {
	raw := c.Query(name)
	if raw == "" {
		return false
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return false
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
