package analysis

import (
	"fmt"

	"sentiment-pulse/internal/domain"

	"github.com/shopspring/decimal"
)

// QuoteFromSeries derives the latest price and the percent change against
// the previous close. With a single point the change is zero.
func QuoteFromSeries(ticker string, series domain.PriceSeries) (*domain.PriceQuote, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no closes for %s", domain.ErrPriceUnavailable, ticker)
	}
	latest := series[len(series)-1]
	prev := latest
	if len(series) > 1 {
		prev = series[len(series)-2]
	}

	last := decimal.NewFromFloat(latest.Close)
	change := decimal.Zero
	if prev.Close != 0 {
		p := decimal.NewFromFloat(prev.Close)
		change = last.Sub(p).Div(p).Mul(decimal.NewFromInt(100))
	}

	return &domain.PriceQuote{
		Ticker:    ticker,
		Price:     last.RoundBank(2).InexactFloat64(),
		ChangePct: change.RoundBank(2).InexactFloat64(),
		AsOf:      latest.Time,
	}, nil
}
