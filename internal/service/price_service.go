package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
)

const quoteCacheTTL = 60 * time.Second

type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*domain.PriceQuote, error)
}

type HistoryFetcher interface {
	FetchHistory(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error)
}

// PriceFetcher is what a single upstream price source provides.
type PriceFetcher interface {
	QuoteFetcher
	HistoryFetcher
}

type PriceStore interface {
	UpsertPoints(ctx context.Context, ticker, interval string, series domain.PriceSeries) error
	ListPoints(ctx context.Context, ticker, interval string, since time.Time, loc *time.Location) (domain.PriceSeries, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PriceService serves quotes and closing series. Quotes are cached in Redis
// when a client is configured; persisted series need a PriceStore.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceFetcher
	repo     PriceStore
	redis    RedisClient
}

func NewPriceService(
	tracer trace.Tracer,
	provider PriceFetcher,
	repo PriceStore,
	redisClient RedisClient,
) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		repo:     repo,
		redis:    redisClient,
	}
}

// Quote returns the latest close for ticker, from cache when fresh.
func (s *PriceService) Quote(ctx context.Context, ticker string) (*domain.PriceQuote, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.quote")
	defer span.End()

	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("ticker", ticker))

	if s.redis != nil {
		cached, err := s.getQuoteCache(ctx, ticker)
		if err != nil {
			logging.Warnf("redis quote cache read error for %s: %v", ticker, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	q, err := s.provider.FetchQuote(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.redis != nil {
		if err := s.setQuoteCache(ctx, q); err != nil {
			logging.Warnf("redis quote cache write error for %s: %v", ticker, err)
		}
	}
	return q, nil
}

// History fetches the closing series for ticker over rng at interval.
func (s *PriceService) History(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.history")
	defer span.End()

	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("range", rng), attribute.String("interval", interval))

	series, err := s.provider.FetchHistory(ctx, ticker, rng, interval)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return series, nil
}

// RecordHistory fetches a series and persists it. It is a no-op without a
// PriceStore.
func (s *PriceService) RecordHistory(ctx context.Context, ticker, rng, interval string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.record-history")
	defer span.End()

	if s.repo == nil {
		return 0, nil
	}
	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return 0, err
	}
	series, err := s.History(ctx, ticker, rng, interval)
	if err != nil {
		return 0, err
	}
	if err := s.repo.UpsertPoints(ctx, ticker, interval, series); err != nil {
		return 0, fmt.Errorf("upsert price points for %s: %w", ticker, err)
	}
	return len(series), nil
}

// StoredHistory reads a persisted series.
func (s *PriceService) StoredHistory(ctx context.Context, ticker, interval string, since time.Time, loc *time.Location) (domain.PriceSeries, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.stored-history")
	defer span.End()

	if s.repo == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return s.repo.ListPoints(ctx, ticker, interval, since, loc)
}

func quoteKey(ticker string) string {
	return "quote:" + ticker
}

func (s *PriceService) setQuoteCache(ctx context.Context, q *domain.PriceQuote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, quoteKey(q.Ticker), data, quoteCacheTTL).Err()
}

func (s *PriceService) getQuoteCache(ctx context.Context, ticker string) (*domain.PriceQuote, error) {
	data, err := s.redis.Get(ctx, quoteKey(ticker)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var q domain.PriceQuote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
