package analysis

import (
	"sentiment-pulse/internal/domain"
)

const dateLayout = "2006-01-02"

// Overlay inner-joins a price series with a daily sentiment table on calendar
// date. Each side's date is taken in its own location. Every price point on a
// date that has a sentiment bucket produces one row.
func Overlay(series domain.PriceSeries, daily domain.Table) []domain.OverlayRow {
	rows := []domain.OverlayRow{}
	if len(series) == 0 || len(daily.Buckets) == 0 {
		return rows
	}

	byDate := make(map[string]domain.SentimentCounts, len(daily.Buckets))
	for _, b := range daily.Buckets {
		date := b.Start.Format(dateLayout)
		c := byDate[date]
		c.Positive += b.Counts.Positive
		c.Neutral += b.Counts.Neutral
		c.Negative += b.Counts.Negative
		byDate[date] = c
	}

	for _, pt := range series {
		date := pt.Time.Format(dateLayout)
		counts, ok := byDate[date]
		if !ok {
			continue
		}
		rows = append(rows, domain.OverlayRow{
			Date:           date,
			Time:           pt.Time,
			Close:          pt.Close,
			Counts:         counts,
			SentimentCount: counts.Total(),
		})
	}
	return rows
}
