package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/daverett/reporter-finder/db"
	"github.com/daverett/reporter-finder/internal/handler"
	"github.com/daverett/reporter-finder/internal/repository"
	"github.com/daverett/reporter-finder/pkg/enrich"
	"github.com/daverett/reporter-finder/pkg/news"
	"github.com/daverett/reporter-finder/pkg/scoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// redisCache adapts the shared Redis helpers to the handler cache.
type redisCache struct{}

func (redisCache) Get(key string) (string, bool, error) {
	return db.CacheGet(key)
}

func (redisCache) Set(key string, value string, ttl time.Duration) error {
	return db.CacheSet(key, value, ttl)
}

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var cache handler.Cache
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		cache = redisCache{}
	} else {
		slog.Warn("REDIS_URL not set, search caching disabled")
	}

	var sources []news.NewsSource
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		sources = append(sources, news.NewNewsAPIClient(key))
	}
	if key := os.Getenv("PERIGON_API_KEY"); key != "" {
		sources = append(sources, news.NewPerigonClient(key))
	}
	if len(sources) == 0 {
		slog.Warn("no news source API keys configured, live search will fail")
	}

	weights := scoring.DefaultWeights()
	if path := os.Getenv("OUTLET_WEIGHTS_FILE"); path != "" {
		weights, err = scoring.LoadWeights(path)
		if err != nil {
			log.Fatalf("error loading outlet weights: %v", err)
		}
	}

	var emails handler.EmailFinder
	if key := os.Getenv("HUNTER_API_KEY"); key != "" {
		emails = enrich.NewHunterClient(key)
	}

	var journalists handler.ProfileFinder
	if key := os.Getenv("PERIGON_API_KEY"); key != "" {
		journalists = enrich.NewJournalistClient(key)
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	reporterRepo := repository.NewReporterRepository(db.DB)

	searchHandler := handler.NewSearchHandler(news.NewMultiSource(sources...), cache)
	reporterHandler := handler.NewReporterHandler(searchHandler, weights, emails, journalists, cache)
	feedHandler := handler.NewFeedHandler(articleRepo, reporterRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.Use(handler.BasicAuth(os.Getenv("APP_USERNAME"), os.Getenv("APP_PASSWORD")))

	r.GET("/search", searchHandler.GetSearch)
	r.GET("/search/export", searchHandler.ExportSearch)
	r.GET("/reporters", reporterHandler.GetReporters)
	r.GET("/reporters/export", reporterHandler.ExportReporters)
	r.GET("/reporters/saved", feedHandler.GetSavedReporters)
	r.GET("/reporters/saved/:name", feedHandler.GetSavedReporter)
	r.GET("/articles", feedHandler.GetArticles)
	r.GET("/health", feedHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
