package analysis

import (
	"sort"
	"time"

	"sentiment-pulse/internal/domain"
)

// Aggregate counts posts per (bucket, sentiment). Buckets are floored to the
// start of the day or hour in the location of each post's CreatedAt. Every
// emitted bucket carries all three sentiment counts; buckets without posts
// are omitted.
func Aggregate(posts []domain.LabeledPost, g domain.Granularity) domain.Table {
	table := domain.Table{Granularity: g, Buckets: []domain.Bucket{}}
	if len(posts) == 0 {
		return table
	}

	buckets := make(map[int64]*domain.Bucket)
	for _, p := range posts {
		start := Floor(p.CreatedAt, g)
		b, ok := buckets[start.Unix()]
		if !ok {
			b = &domain.Bucket{Start: start}
			buckets[start.Unix()] = b
		}
		b.Counts.Inc(p.Sentiment)
	}

	table.Buckets = make([]domain.Bucket, 0, len(buckets))
	for _, b := range buckets {
		table.Buckets = append(table.Buckets, *b)
	}
	sort.Slice(table.Buckets, func(i, j int) bool {
		return table.Buckets[i].Start.Before(table.Buckets[j].Start)
	})
	return table
}

// Floor returns the calendar-aligned start of the day or hour containing t,
// computed in t's own location. Hours are floored on the instant, so the two
// occurrences of a repeated wall-clock hour stay separate buckets.
func Floor(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityHour:
		return t.Add(-time.Duration(t.Minute())*time.Minute -
			time.Duration(t.Second())*time.Second -
			time.Duration(t.Nanosecond()))
	default:
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

// Distribution returns overall counts per sentiment.
func Distribution(posts []domain.LabeledPost) domain.SentimentCounts {
	var c domain.SentimentCounts
	for _, p := range posts {
		c.Inc(p.Sentiment)
	}
	return c
}
