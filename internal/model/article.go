package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Article struct {
	ID          int64
	Title       string
	URL         string
	Outlet      string
	Author      string
	Source      string
	PublishedAt time.Time
	FetchedAt   time.Time
}

type ArticleTopic struct {
	ID        int64
	ArticleID int64
	Topic     string
	CreatedAt time.Time
}

type ProcessingError struct {
	ID           int64
	ReporterID   int64
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}
