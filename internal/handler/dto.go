package handler

type ArticleResponse struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Outlet      string   `json:"outlet"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"published_at"`
	Topics      []string `json:"topics"`
	Source      string   `json:"source"`
}

type SearchResponse struct {
	Topic    string            `json:"topic"`
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
}

type ProfileResponse struct {
	Title    string   `json:"title"`
	Bio      string   `json:"bio"`
	Twitter  string   `json:"twitter"`
	LinkedIn string   `json:"linkedin"`
	Location string   `json:"location"`
	Topics   []string `json:"topics"`
	Sources  []string `json:"sources"`
}

type ReporterResponse struct {
	Name            string            `json:"name"`
	Outlets         []string          `json:"outlets"`
	ArticleCount    int               `json:"article_count"`
	Score           float64           `json:"score"`
	LastPublishedAt string            `json:"last_published_at"`
	Email           string            `json:"email,omitempty"`
	TopArticles     []ArticleResponse `json:"top_articles"`
	Profile         *ProfileResponse  `json:"profile,omitempty"`
}

type ReporterSearchResponse struct {
	Topic     string             `json:"topic"`
	Method    string             `json:"method"`
	Reporters []ReporterResponse `json:"reporters"`
	Total     int                `json:"total"`
}

type StoredArticleResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Outlet      string   `json:"outlet"`
	Author      string   `json:"author"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	Topics      []string `json:"topics"`
}

type FeedResponse struct {
	Articles []StoredArticleResponse `json:"articles"`
	Total    int                     `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

type SavedProfileResponse struct {
	ProfileResponse
	Beats     []string `json:"beats"`
	Pitch     string   `json:"pitch"`
	ModelUsed string   `json:"model_used"`
}

type SavedReporterResponse struct {
	ID         int64                   `json:"id"`
	Name       string                  `json:"name"`
	Email      string                  `json:"email"`
	Status     string                  `json:"status"`
	EnrichedAt string                  `json:"enriched_at,omitempty"`
	Profile    *SavedProfileResponse   `json:"profile,omitempty"`
	Articles   []StoredArticleResponse `json:"articles,omitempty"`
}

type SavedReportersResponse struct {
	Reporters []SavedReporterResponse `json:"reporters"`
	Total     int                     `json:"total"`
	Limit     int                     `json:"limit"`
	Offset    int                     `json:"offset"`
}
