package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"sentiment-pulse/internal/analysis"
	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
	"sentiment-pulse/internal/metrics"
)

const (
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooUserAgent = "Mozilla/5.0 (compatible; sentiment-pulse/1.0)"
	quoteRange     = "2d"
	quoteInterval  = "1d"
)

// YahooProvider reads closing prices from the Yahoo Finance chart endpoint.
// Requests go through a rate limiter and a circuit breaker; a ticker with no
// data is not counted as a breaker failure.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewYahooProvider(tracer trace.Tracer, m *metrics.Metrics) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(120, 5),
		breaker: newPriceBreaker("yahoo"),
		metrics: m,
	}
}

func newPriceBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrPriceUnavailable) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory returns the closing series for ticker over rng sampled at
// interval (Yahoo range/interval strings such as "7d" and "1h"). Points are
// sorted by time, null closes are skipped, and times are in the exchange's
// time zone.
func (p *YahooProvider) FetchHistory(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-history")
	defer span.End()
	span.SetAttributes(
		attribute.String("ticker", ticker),
		attribute.String("range", rng),
		attribute.String("interval", interval),
	)

	started := time.Now()
	defer p.metrics.ObserveProvider("yahoo", started)

	out, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetchChart(ctx, ticker, rng, interval)
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", domain.ErrPriceUnavailable, err)
		}
		return nil, err
	}
	return out.(domain.PriceSeries), nil
}

// FetchQuote derives the latest close and its change against the previous
// daily close.
func (p *YahooProvider) FetchQuote(ctx context.Context, ticker string) (*domain.PriceQuote, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-quote")
	defer span.End()

	series, err := p.FetchHistory(ctx, ticker, quoteRange, quoteInterval)
	if err != nil {
		return nil, err
	}
	return analysis.QuoteFromSeries(ticker, series)
}

func (p *YahooProvider) fetchChart(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error) {
	if err := waitLimiter(ctx, p.limiter); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", strings.TrimRight(p.baseURL, "/"), url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: unknown ticker %s", domain.ErrPriceUnavailable, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("yahoo API error %d: %s", resp.StatusCode, string(body))
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode yahoo response: %w", err)
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrPriceUnavailable, e.Code, e.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty chart for %s", domain.ErrPriceUnavailable, ticker)
	}

	res := payload.Chart.Result[0]
	loc := time.UTC
	if name := res.Meta.ExchangeTimezoneName; name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}

	var closes []*float64
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}
	return buildSeries(res.Timestamp, closes, loc), nil
}

// buildSeries pairs timestamps with closes, dropping nulls and repeated
// timestamps (the last value wins).
func buildSeries(ts []int64, closes []*float64, loc *time.Location) domain.PriceSeries {
	byTime := make(map[int64]float64, len(ts))
	for i, t := range ts {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		byTime[t] = *closes[i]
	}

	keys := make([]int64, 0, len(byTime))
	for t := range byTime {
		keys = append(keys, t)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	series := make(domain.PriceSeries, 0, len(keys))
	for _, t := range keys {
		series = append(series, domain.PricePoint{Time: time.Unix(t, 0).In(loc), Close: byTime[t]})
	}
	return series
}
