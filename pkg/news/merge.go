package news

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// MultiSource queries every configured source and unions the results,
// dropping duplicate URLs. One vendor failing does not fail the search;
// the error is logged and the remaining sources are used.
type MultiSource struct {
	sources []NewsSource
}

func NewMultiSource(sources ...NewsSource) *MultiSource {
	return &MultiSource{sources: sources}
}

func (m *MultiSource) Name() string {
	return "merged"
}

func (m *MultiSource) Search(q Query) ([]Article, error) {
	if len(m.sources) == 0 {
		return nil, errors.New("no news sources configured")
	}

	var lists [][]Article
	var errs []error
	for _, src := range m.sources {
		articles, err := src.Search(q)
		if err != nil {
			slog.Warn("news source failed, continuing without it", "source", src.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		lists = append(lists, articles)
	}

	if len(lists) == 0 {
		return nil, errors.Join(errs...)
	}

	return dedupeByURL(lists), nil
}

// dedupeByURL keeps the first occurrence of each URL, compared
// case-insensitively. Order within and across lists is preserved.
func dedupeByURL(lists [][]Article) []Article {
	var combined []Article
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, a := range list {
			key := strings.ToLower(strings.TrimSpace(a.URL))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			combined = append(combined, a)
		}
	}
	return combined
}
