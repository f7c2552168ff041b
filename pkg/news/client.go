package news

import "time"

type Article struct {
	Title       string
	URL         string
	Outlet      string
	Author      string
	PublishedAt time.Time
	Topics      []string
	Source      string
}

type Query struct {
	Topic  string
	Limit  int
	SortBy string
	From   time.Time
	To     time.Time
}

type NewsSource interface {
	Search(q Query) ([]Article, error)
	Name() string
}

const (
	SortByRelevancy  = "relevancy"
	SortByPopularity = "popularity"
)
