package domain

import "time"

// Sentiment is the label assigned to a post title.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments is the fixed column order used by every count table.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Post is a raw post as returned by the post source.
type Post struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Score   int    `json:"score"`
	Created int64  `json:"created"`
	URL     string `json:"url"`
}

// LabeledPost is a Post with its sentiment label and calendar timestamp.
type LabeledPost struct {
	Post
	Sentiment Sentiment `json:"sentiment"`
	Compound  float64   `json:"compound"`
	CreatedAt time.Time `json:"created_dt"`
}
