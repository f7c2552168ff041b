package scoring

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/daverett/reporter-finder/pkg/news"
)

type Method string

const (
	MethodFrequency  Method = "frequency"
	MethodProminence Method = "prominence"
	MethodRecency    Method = "recency"
	MethodHybrid     Method = "hybrid"
)

const (
	DefaultHalfLifeDays = 30.0
	TopArticleCount     = 5
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodFrequency, MethodProminence, MethodRecency, MethodHybrid:
		return Method(s), nil
	case "":
		return MethodProminence, nil
	}
	return "", fmt.Errorf("unknown scoring method %q", s)
}

// RecencyWeight decays by half every halfLifeDays. Zero timestamps and
// future dates weigh 1.0.
func RecencyWeight(publishedAt, now time.Time, halfLifeDays float64) float64 {
	if publishedAt.IsZero() {
		return 1.0
	}
	days := now.Sub(publishedAt).Hours() / 24.0
	if days < 0 {
		days = 0
	}
	return math.Pow(0.5, days/halfLifeDays)
}

// RankedReporter is a reporter profile derived from a search result set.
type RankedReporter struct {
	Name            string
	Outlets         []string
	ArticleCount    int
	Score           float64
	LastPublishedAt time.Time
	TopArticles     []news.Article
}

// Rank groups articles by author, scores each reporter with the given
// method and returns them ordered by score, then article count, then
// name. Articles without an author or URL are skipped.
func Rank(articles []news.Article, method Method, weights *Weights) []RankedReporter {
	return rankAt(articles, method, weights, time.Now().UTC())
}

func rankAt(articles []news.Article, method Method, weights *Weights, now time.Time) []RankedReporter {
	if weights == nil {
		weights = DefaultWeights()
	}

	groups := make(map[string][]news.Article)
	var order []string
	for _, a := range articles {
		if a.Author == "" || a.URL == "" {
			continue
		}
		if _, ok := groups[a.Author]; !ok {
			order = append(order, a.Author)
		}
		groups[a.Author] = append(groups[a.Author], a)
	}

	reporters := make([]RankedReporter, 0, len(order))
	for _, name := range order {
		arts := groups[name]

		sort.SliceStable(arts, func(i, j int) bool {
			return arts[i].PublishedAt.After(arts[j].PublishedAt)
		})

		outletSet := make(map[string]bool)
		maxWeight := weights.defaultWeight
		for _, a := range arts {
			if a.Outlet != "" {
				outletSet[a.Outlet] = true
				if w := weights.OutletWeight(a.Outlet); w > maxWeight {
					maxWeight = w
				}
			}
		}
		outlets := make([]string, 0, len(outletSet))
		for o := range outletSet {
			outlets = append(outlets, o)
		}
		sort.Strings(outlets)

		top := arts
		if len(top) > TopArticleCount {
			top = top[:TopArticleCount]
		}

		reporters = append(reporters, RankedReporter{
			Name:            name,
			Outlets:         outlets,
			ArticleCount:    len(arts),
			Score:           score(arts, maxWeight, method, now),
			LastPublishedAt: arts[0].PublishedAt,
			TopArticles:     top,
		})
	}

	sort.SliceStable(reporters, func(i, j int) bool {
		if reporters[i].Score != reporters[j].Score {
			return reporters[i].Score > reporters[j].Score
		}
		if reporters[i].ArticleCount != reporters[j].ArticleCount {
			return reporters[i].ArticleCount > reporters[j].ArticleCount
		}
		return reporters[i].Name < reporters[j].Name
	})

	return reporters
}

func score(arts []news.Article, maxWeight float64, method Method, now time.Time) float64 {
	count := float64(len(arts))

	switch method {
	case MethodFrequency:
		return count
	case MethodProminence:
		return count * maxWeight
	case MethodRecency:
		var sum float64
		for _, a := range arts {
			sum += RecencyWeight(a.PublishedAt, now, DefaultHalfLifeDays)
		}
		return sum
	default:
		var sum float64
		for _, a := range arts {
			sum += RecencyWeight(a.PublishedAt, now, DefaultHalfLifeDays)
		}
		norm := sum / math.Max(1.0, count)
		return count * maxWeight * norm
	}
}
