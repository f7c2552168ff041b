package main

import (
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/daverett/reporter-finder/db"
	"github.com/daverett/reporter-finder/internal/model"
	"github.com/daverett/reporter-finder/internal/repository"
	"github.com/daverett/reporter-finder/pkg/enrich"
	"github.com/daverett/reporter-finder/pkg/llm"
	"github.com/daverett/reporter-finder/pkg/scoring"
	"github.com/daverett/reporter-finder/pkg/topics"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	reporterRepo := repository.NewReporterRepository(db.DB)

	var hunter *enrich.HunterClient
	if key := os.Getenv("HUNTER_API_KEY"); key != "" {
		hunter = enrich.NewHunterClient(key)
	}

	var journalists *enrich.JournalistClient
	if key := os.Getenv("PERIGON_API_KEY"); key != "" {
		journalists = enrich.NewJournalistClient(key)
	}

	var beatClient llm.BeatClient
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		beatClient = llm.NewAnthropicClient(key)
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		beatClient = llm.NewOpenAIClient(key)
	}

	for {
		name, err := db.PopFromQueue(db.EnrichQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		reporter, err := reporterRepo.GetByName(name)
		if err != nil {
			slog.Error("error getting reporter from DB", "reporter", name, "error", err)
			continue
		}

		if reporter == nil {
			slog.Warn("reporter not found in DB", "reporter", name)
			continue
		}

		errorCount, err := reporterRepo.GetErrorCount(reporter.ID)
		if err != nil {
			slog.Error("error getting error count", "reporter", name, "error", err)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("reporter exceeded max retries, marking as failed", "reporter", name, "error_count", errorCount)
			reporterRepo.UpdateStatus(reporter.ID, model.StatusFailed)
			db.PushToQueue(db.DeadLetterKey, name)
			continue
		}

		reporterRepo.UpdateStatus(reporter.ID, model.StatusProcessing)

		articles, err := articleRepo.GetByAuthor(name, scoring.TopArticleCount)
		if err != nil {
			slog.Error("error fetching reporter articles", "reporter", name, "error", err)
			reporterRepo.SaveError(reporter.ID, err.Error(), "db_error")
			db.PushToQueue(db.EnrichQueueKey, name)
			time.Sleep(5 * time.Second)
			continue
		}

		// Email lookup is best effort: a missing email is still a
		// complete enrichment.
		var email string
		if hunter != nil && len(articles) > 0 {
			domain := enrich.ExtractDomain(articles[0].URL)
			email, err = hunter.DomainSearch(domain)
			if err != nil {
				slog.Warn("email lookup failed", "reporter", name, "domain", domain, "error", err)
				email = ""
			}
		}

		profile := &model.ReporterProfile{ReporterID: reporter.ID}

		if journalists != nil {
			found, err := journalists.FindJournalist(name, "")
			if err != nil {
				slog.Error("error fetching journalist profile", "reporter", name, "error", err)
				reporterRepo.SaveError(reporter.ID, err.Error(), "journalist_error")
				db.PushToQueue(db.EnrichQueueKey, name)
				time.Sleep(5 * time.Second)
				continue
			}

			if found != nil {
				profile.Title = found.Title
				profile.Bio = found.Bio
				profile.Twitter = found.Twitter
				profile.LinkedIn = found.LinkedIn
				profile.Location = found.Location
				profile.Topics = found.Topics
				profile.Sources = found.Sources
			}
		}

		headlines := make([]string, 0, len(articles))
		outlets := make(map[string]bool)
		for _, a := range articles {
			headlines = append(headlines, a.Title)
			if a.Outlet != "" {
				outlets[a.Outlet] = true
			}
		}

		profile.Beats = topics.InferFromText(strings.Join(headlines, "\n"), profile.Topics, topics.DefaultMaxBeats)

		if len(profile.Beats) == 0 && beatClient != nil && len(headlines) > 0 {
			outletList := make([]string, 0, len(outlets))
			for o := range outlets {
				outletList = append(outletList, o)
			}

			result, err := beatClient.InferBeats(llm.BeatInput{
				Name:      name,
				Outlets:   outletList,
				Headlines: headlines,
			})
			if err != nil {
				slog.Warn("LLM beat inference failed", "reporter", name, "error", err)
			} else {
				profile.Beats = result.Beats
				profile.Pitch = result.Pitch
				profile.ModelUsed = result.ModelUsed
			}
		}

		err = reporterRepo.SaveEnrichment(reporter.ID, email, profile)
		if err != nil {
			slog.Error("error saving enrichment", "reporter", name, "error", err)
			reporterRepo.SaveError(reporter.ID, err.Error(), "db_error")
			db.PushToQueue(db.EnrichQueueKey, name)
			time.Sleep(5 * time.Second)
			continue
		}

		slog.Info("reporter enriched successfully", "reporter", name, "email_found", email != "", "beats", len(profile.Beats))
	}
}
