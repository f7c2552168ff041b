package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daverett/reporter-finder/pkg/enrich"
	"github.com/daverett/reporter-finder/pkg/scoring"

	"github.com/gin-gonic/gin"
)

type EmailFinder interface {
	DomainSearch(domain string) (string, error)
}

type ProfileFinder interface {
	FindJournalist(name, topic string) (*enrich.JournalistProfile, error)
}

type ReporterHandler struct {
	search      *SearchHandler
	weights     *scoring.Weights
	emails      EmailFinder
	journalists ProfileFinder
	cache       Cache
}

func NewReporterHandler(search *SearchHandler, weights *scoring.Weights, emails EmailFinder, journalists ProfileFinder, cache Cache) *ReporterHandler {
	return &ReporterHandler{
		search:      search,
		weights:     weights,
		emails:      emails,
		journalists: journalists,
		cache:       cache,
	}
}

func (h *ReporterHandler) GetReporters(c *gin.Context) {
	reporters, method, topic, ok := h.rankReporters(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ReporterSearchResponse{
		Topic:     topic,
		Method:    string(method),
		Reporters: reporters,
		Total:     len(reporters),
	})
}

func (h *ReporterHandler) ExportReporters(c *gin.Context) {
	reporters, _, _, ok := h.rankReporters(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="reporters.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"Reporter", "Outlets", "ArticlesMatched", "Score", "Email", "ProfileTitle", "ProfileTopics"})
	for _, r := range reporters {
		var profileTitle, profileTopics string
		if r.Profile != nil {
			profileTitle = r.Profile.Title
			profileTopics = strings.Join(r.Profile.Topics, ", ")
		}
		w.Write([]string{
			r.Name,
			strings.Join(r.Outlets, ", "),
			fmt.Sprintf("%d", r.ArticleCount),
			fmt.Sprintf("%.2f", r.Score),
			r.Email,
			profileTitle,
			profileTopics,
		})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		slog.Error("error writing reporters CSV", "error", err)
	}
}

func (h *ReporterHandler) rankReporters(c *gin.Context) ([]ReporterResponse, scoring.Method, string, bool) {
	q, ok := parseSearchQuery(c)
	if !ok {
		return nil, "", "", false
	}

	method, err := scoring.ParseMethod(c.Query("method"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method must be frequency, prominence, recency or hybrid"})
		return nil, "", "", false
	}

	articles, ok := h.search.searchCached(c, q)
	if !ok {
		return nil, "", "", false
	}

	ranked := scoring.Rank(articles, method, h.weights)

	enrichEmails := getQueryBool("enrich_emails", c) && h.emails != nil
	enrichProfiles := getQueryBool("enrich_profiles", c) && h.journalists != nil

	res := make([]ReporterResponse, 0, len(ranked))
	for _, r := range ranked {
		rep := ReporterResponse{
			Name:            r.Name,
			Outlets:         r.Outlets,
			ArticleCount:    r.ArticleCount,
			Score:           r.Score,
			LastPublishedAt: formatTime(r.LastPublishedAt),
			TopArticles:     toArticleResponses(r.TopArticles),
		}

		if enrichEmails && len(r.TopArticles) > 0 {
			rep.Email = h.lookupEmail(r.TopArticles[0].URL)
		}

		if enrichProfiles {
			rep.Profile = h.lookupProfile(r.Name, q.Topic)
		}

		res = append(res, rep)
	}

	return res, method, q.Topic, true
}

// lookupEmail is best effort: failures are logged, never surfaced.
func (h *ReporterHandler) lookupEmail(articleURL string) string {
	domain := enrich.ExtractDomain(articleURL)
	if domain == "" {
		return ""
	}

	email, err := h.emails.DomainSearch(domain)
	if err != nil {
		slog.Warn("email enrichment failed", "domain", domain, "error", err)
		return ""
	}
	return email
}

func (h *ReporterHandler) lookupProfile(name, topic string) *ProfileResponse {
	key := profileCacheKey(name, topic)

	if h.cache != nil {
		if cached, hit, err := h.cache.Get(key); err == nil && hit {
			var profile ProfileResponse
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile
			}
		}
	}

	found, err := h.journalists.FindJournalist(name, topic)
	if err != nil {
		slog.Warn("journalist enrichment failed", "reporter", name, "error", err)
		return nil
	}
	if found == nil {
		return nil
	}

	profile := &ProfileResponse{
		Title:    found.Title,
		Bio:      found.Bio,
		Twitter:  found.Twitter,
		LinkedIn: found.LinkedIn,
		Location: found.Location,
		Topics:   found.Topics,
		Sources:  found.Sources,
	}

	if h.cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := h.cache.Set(key, string(data), profileCacheTTL); err != nil {
				slog.Warn("profile cache write failed", "error", err)
			}
		}
	}

	return profile
}

const profileCacheTTL = time.Hour

func profileCacheKey(name, topic string) string {
	return fmt.Sprintf("reporterfinder:cache:journalist:%s|%s",
		strings.ToLower(strings.TrimSpace(name)), strings.ToLower(strings.TrimSpace(topic)))
}
