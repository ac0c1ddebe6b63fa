package analysis

import (
	"sentiment-pulse/internal/domain"

	"github.com/shopspring/decimal"
)

// Summarize counts posts per sentiment and derives percentages rounded to
// one decimal place, ties to even. An empty input yields all zeros.
func Summarize(posts []domain.LabeledPost) domain.Summary {
	c := Distribution(posts)
	total := c.Total()
	return domain.Summary{
		Total:       total,
		Positive:    c.Positive,
		Neutral:     c.Neutral,
		Negative:    c.Negative,
		PositivePct: percent(c.Positive, total),
		NeutralPct:  percent(c.Neutral, total),
		NegativePct: percent(c.Negative, total),
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(n)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(1).
		InexactFloat64()
}
