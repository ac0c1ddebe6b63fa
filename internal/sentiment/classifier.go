package sentiment

import (
	"time"

	"sentiment-pulse/internal/domain"

	"github.com/jonreiter/govader"
)

const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scorer maps text to a compound polarity score in [-1, 1].
type Scorer interface {
	Compound(text string) float64
}

// VaderScorer scores text with the VADER lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the lexicon. The analyzer is read-only after
// construction, so one instance can be shared across goroutines.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Compound(text string) float64 {
	if text == "" {
		return 0
	}
	return clamp(s.analyzer.PolarityScores(text).Compound, -1, 1)
}

// Label applies the symmetric thresholds to a compound score.
func Label(score float64) domain.Sentiment {
	switch {
	case score >= PositiveThreshold:
		return domain.SentimentPositive
	case score <= NegativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

type Classifier struct {
	scorer Scorer
	loc    *time.Location
}

type Option func(*Classifier)

// WithLocation sets the timezone used to derive LabeledPost.CreatedAt.
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func NewClassifier(scorer Scorer, opts ...Option) *Classifier {
	c := &Classifier{scorer: scorer, loc: time.UTC}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location is the timezone CreatedAt values are expressed in.
func (c *Classifier) Location() *time.Location {
	return c.loc
}

func (c *Classifier) Classify(text string) domain.Sentiment {
	return Label(c.scorer.Compound(text))
}

// ClassifyBatch labels every post, preserving length and order.
func (c *Classifier) ClassifyBatch(posts []domain.Post) []domain.LabeledPost {
	out := make([]domain.LabeledPost, len(posts))
	for i, p := range posts {
		score := c.scorer.Compound(p.Title)
		out[i] = domain.LabeledPost{
			Post:      p,
			Sentiment: Label(score),
			Compound:  score,
			CreatedAt: time.Unix(p.Created, 0).In(c.loc),
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
