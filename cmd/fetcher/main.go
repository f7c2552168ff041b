package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/daverett/reporter-finder/db"
	"github.com/daverett/reporter-finder/internal/model"
	"github.com/daverett/reporter-finder/internal/repository"
	"github.com/daverett/reporter-finder/pkg/news"
	"github.com/daverett/reporter-finder/pkg/topics"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	var sources []news.NewsSource
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		sources = append(sources, news.NewNewsAPIClient(key))
	}
	if key := os.Getenv("PERIGON_API_KEY"); key != "" {
		sources = append(sources, news.NewPerigonClient(key))
	}

	if len(sources) == 0 {
		slog.Error("no news source API keys configured")
		return
	}

	searchTopics := topics.ParseList(os.Getenv("TOPICS"))
	if len(searchTopics) == 0 {
		slog.Error("TOPICS is empty, nothing to fetch")
		return
	}

	limit := 50
	if raw := os.Getenv("FETCH_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	reporterRepo := repository.NewReporterRepository(db.DB)

	searcher := news.NewMultiSource(sources...)
	now := time.Now().UTC()

	for _, topic := range searchTopics {
		articles, err := searcher.Search(news.Query{
			Topic:  topic,
			Limit:  limit,
			SortBy: news.SortByRelevancy,
			From:   now.AddDate(0, 0, -30),
			To:     now,
		})
		if err != nil {
			slog.Error("error searching articles", "topic", topic, "error", err)
			continue
		}

		var saved, duplicated, errors int

		for _, a := range articles {
			article := model.Article{
				Title:       a.Title,
				URL:         a.URL,
				Outlet:      a.Outlet,
				Author:      a.Author,
				Source:      a.Source,
				PublishedAt: a.PublishedAt,
			}

			success, err := articleRepo.SaveWithTopics(&article, a.Topics)
			if err != nil {
				slog.Error("error saving article", "topic", topic, "url", a.URL, "error", err)
				errors++
				continue
			}

			if !success {
				slog.Info("duplicate article skipped", "topic", topic, "url", a.URL)
				duplicated++
				continue
			}

			saved++

			if a.Author == "" {
				continue
			}

			_, created, err := reporterRepo.Upsert(a.Author)
			if err != nil {
				slog.Error("error upserting reporter", "reporter", a.Author, "error", err)
				errors++
				continue
			}

			if created {
				err = db.PushToQueue(db.EnrichQueueKey, a.Author)
				if err != nil {
					slog.Error("error pushing to Redis queue", "reporter", a.Author, "error", err)
					errors++
				}
			}
		}

		slog.Info("fetch complete", "topic", topic, "fetched", len(articles), "saved", saved, "duplicated", duplicated, "errors", errors)
	}
}
