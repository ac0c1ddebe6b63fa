package domain

import "time"

// Dashboard is everything the presentation layer needs for one ticker.
type Dashboard struct {
	Ticker       string          `json:"ticker"`
	Limit        int             `json:"limit"`
	FetchedAt    time.Time       `json:"fetched_at"`
	Summary      Summary         `json:"summary"`
	Distribution SentimentCounts `json:"distribution"`
	Daily        Table           `json:"daily"`
	Hourly       Table           `json:"hourly"`
	Recent       []LabeledPost   `json:"recent"`
	Quote        *PriceQuote     `json:"quote,omitempty"`
	History      PriceSeries     `json:"history"`
	Overlay      []OverlayRow    `json:"overlay"`
}

// PulseSnapshot is the cacheable result of one fetch-and-classify run.
type PulseSnapshot struct {
	RunID     string        `json:"run_id"`
	Ticker    string        `json:"ticker"`
	Limit     int           `json:"limit"`
	FetchedAt time.Time     `json:"fetched_at"`
	Posts     []LabeledPost `json:"posts"`
}

// Archive is the persisted view of a ticker over the last Days days.
type Archive struct {
	Ticker   string       `json:"ticker"`
	Days     int          `json:"days"`
	Since    time.Time    `json:"since"`
	Interval string       `json:"interval"`
	Summary  Summary      `json:"summary"`
	Daily    Table        `json:"daily"`
	Overlay  []OverlayRow `json:"overlay"`
}
