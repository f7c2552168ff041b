package handler

import (
	"log/slog"
	"net/http"

	"github.com/daverett/reporter-finder/internal/model"

	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	GetFeed(limit, offset int) ([]model.Article, error)
	GetFeedTotal() (int, error)
	GetTopicsByArticleIDs(ids []int64) (map[int64][]string, error)
	GetByAuthor(author string, limit int) ([]model.Article, error)
}

type ReporterStore interface {
	GetReporters(limit, offset int) ([]model.ReporterWithProfile, error)
	GetReporterTotal() (int, error)
	GetWithProfile(name string) (*model.ReporterWithProfile, error)
}

type FeedHandler struct {
	articles  ArticleStore
	reporters ReporterStore
}

func NewFeedHandler(articles ArticleStore, reporters ReporterStore) *FeedHandler {
	return &FeedHandler{articles: articles, reporters: reporters}
}

func (h *FeedHandler) GetArticles(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	total, err := h.articles.GetFeedTotal()
	if err != nil {
		slog.Error("error fetching article total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	articles, err := h.articles.GetFeed(limit, offset)
	if err != nil {
		slog.Error("error fetching article feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var ids []int64
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	topicMap, err := h.articles.GetTopicsByArticleIDs(ids)
	if err != nil {
		slog.Error("error fetching article topics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var articleRes []StoredArticleResponse
	for _, a := range articles {
		articleRes = append(articleRes, toStoredArticleResponse(a, topicMap[a.ID]))
	}

	c.JSON(http.StatusOK, FeedResponse{
		Articles: articleRes,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *FeedHandler) GetSavedReporters(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	reporters, err := h.reporters.GetReporters(limit, offset)
	if err != nil {
		slog.Error("error fetching saved reporters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.reporters.GetReporterTotal()
	if err != nil {
		slog.Error("error fetching reporter total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := SavedReportersResponse{
		Reporters: []SavedReporterResponse{},
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
	for _, r := range reporters {
		res.Reporters = append(res.Reporters, toSavedReporterResponse(r, nil))
	}

	c.JSON(http.StatusOK, res)
}

func (h *FeedHandler) GetSavedReporter(c *gin.Context) {
	name := c.Param("name")

	reporter, err := h.reporters.GetWithProfile(name)
	if err != nil {
		slog.Error("error fetching reporter", "reporter", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if reporter == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reporter not found"})
		return
	}

	articles, err := h.articles.GetByAuthor(reporter.Name, 5)
	if err != nil {
		slog.Error("error fetching reporter articles", "reporter", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toSavedReporterResponse(*reporter, articles))
}

func (h *FeedHandler) GetHealth(c *gin.Context) {
	_, err := h.articles.GetFeedTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toStoredArticleResponse(a model.Article, topics []string) StoredArticleResponse {
	return StoredArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Outlet:      a.Outlet,
		Author:      a.Author,
		Source:      a.Source,
		PublishedAt: formatTime(a.PublishedAt),
		Topics:      topics,
	}
}

func toSavedReporterResponse(r model.ReporterWithProfile, articles []model.Article) SavedReporterResponse {
	res := SavedReporterResponse{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Status:     r.Status,
		EnrichedAt: formatTime(r.EnrichedAt),
	}

	if r.Profile != nil {
		res.Profile = &SavedProfileResponse{
			ProfileResponse: ProfileResponse{
				Title:    r.Profile.Title,
				Bio:      r.Profile.Bio,
				Twitter:  r.Profile.Twitter,
				LinkedIn: r.Profile.LinkedIn,
				Location: r.Profile.Location,
				Topics:   r.Profile.Topics,
				Sources:  r.Profile.Sources,
			},
			Beats:     r.Profile.Beats,
			Pitch:     r.Profile.Pitch,
			ModelUsed: r.Profile.ModelUsed,
		}
	}

	for _, a := range articles {
		res.Articles = append(res.Articles, toStoredArticleResponse(a, nil))
	}

	return res
}
