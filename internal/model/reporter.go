package model

import "time"

type Reporter struct {
	ID         int64
	Name       string
	Email      string
	Status     string
	EnrichedAt time.Time
	CreatedAt  time.Time
}

type ReporterProfile struct {
	ReporterID int64
	Title      string
	Bio        string
	Twitter    string
	LinkedIn   string
	Location   string
	Topics     []string
	Sources    []string
	Beats      []string
	Pitch      string
	ModelUsed  string
}

type ReporterWithProfile struct {
	Reporter
	Profile *ReporterProfile
}
