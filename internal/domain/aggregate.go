package domain

import "time"

type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

func ParseGranularity(v string) (Granularity, bool) {
	switch Granularity(v) {
	case GranularityDay:
		return GranularityDay, true
	case GranularityHour:
		return GranularityHour, true
	}
	return "", false
}

// SentimentCounts holds one count per label. All three fields are always
// present, so tables built from it are dense.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

// Get returns the count for a label; unknown labels count as zero.
func (c SentimentCounts) Get(s Sentiment) int {
	switch s {
	case SentimentPositive:
		return c.Positive
	case SentimentNeutral:
		return c.Neutral
	case SentimentNegative:
		return c.Negative
	}
	return 0
}

func (c *SentimentCounts) Inc(s Sentiment) {
	switch s {
	case SentimentPositive:
		c.Positive++
	case SentimentNeutral:
		c.Neutral++
	case SentimentNegative:
		c.Negative++
	}
}

// Bucket is one calendar-aligned interval of a Table.
type Bucket struct {
	Start  time.Time       `json:"start"`
	Counts SentimentCounts `json:"counts"`
}

// Table is a time-bucketed sentiment count table. Buckets are sorted by
// Start ascending; intervals without any post are not emitted.
type Table struct {
	Granularity Granularity `json:"granularity"`
	Buckets     []Bucket    `json:"buckets"`
}

// Total sums every cell of the table.
func (t Table) Total() int {
	n := 0
	for _, b := range t.Buckets {
		n += b.Counts.Total()
	}
	return n
}

type Summary struct {
	Total       int     `json:"total"`
	Positive    int     `json:"pos_count"`
	Neutral     int     `json:"neu_count"`
	Negative    int     `json:"neg_count"`
	PositivePct float64 `json:"pos_pct"`
	NeutralPct  float64 `json:"neu_pct"`
	NegativePct float64 `json:"neg_pct"`
}

// OverlayRow is one price point joined with the sentiment bucket of the same
// calendar date.
type OverlayRow struct {
	Date           string          `json:"date"`
	Time           time.Time       `json:"time"`
	Close          float64         `json:"close"`
	Counts         SentimentCounts `json:"counts"`
	SentimentCount int             `json:"sentiment_count"`
}
