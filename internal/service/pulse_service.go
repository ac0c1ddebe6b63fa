package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/analysis"
	"sentiment-pulse/internal/cache"
	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
	"sentiment-pulse/internal/metrics"
	"sentiment-pulse/internal/sentiment"
)

type PostFetcher interface {
	FetchPosts(ctx context.Context, query string, limit int) ([]domain.Post, error)
}

type PostStore interface {
	SaveSnapshot(ctx context.Context, snap *domain.PulseSnapshot) error
	ListPosts(ctx context.Context, ticker string, since time.Time, loc *time.Location) ([]domain.LabeledPost, error)
}

type PulseOptions struct {
	HistoryRange    string
	HistoryInterval string
}

// PulseService runs the fetch, classify and aggregate pipeline for a ticker.
// Labeled posts are cached per (ticker, limit); a failed post fetch yields an
// empty analysis that is not cached.
type PulseService struct {
	tracer     trace.Tracer
	posts      PostFetcher
	prices     *PriceService
	classifier *sentiment.Classifier
	cache      cache.AnalysisCache
	store      PostStore
	clock      clockwork.Clock
	metrics    *metrics.Metrics
	opts       PulseOptions
}

func NewPulseService(
	tracer trace.Tracer,
	posts PostFetcher,
	prices *PriceService,
	classifier *sentiment.Classifier,
	analysisCache cache.AnalysisCache,
	store PostStore,
	clock clockwork.Clock,
	m *metrics.Metrics,
	opts PulseOptions,
) *PulseService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.HistoryRange == "" {
		opts.HistoryRange = "7d"
	}
	if opts.HistoryInterval == "" {
		opts.HistoryInterval = "1h"
	}
	return &PulseService{
		tracer:     tracer,
		posts:      posts,
		prices:     prices,
		classifier: classifier,
		cache:      analysisCache,
		store:      store,
		clock:      clock,
		metrics:    m,
		opts:       opts,
	}
}

// Snapshot returns labeled posts for ticker, reusing a cached run younger
// than ttl.
func (s *PulseService) Snapshot(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.PulseSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "pulse-service.snapshot")
	defer span.End()

	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("ticker", ticker), attribute.Int("limit", limit))

	key := cache.Key(ticker, limit)
	if s.cache != nil {
		if snap, ok := s.cache.Get(ctx, key, ttl); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return s.relocate(snap), nil
		}
	}

	raw, err := s.posts.FetchPosts(ctx, ticker, limit)
	fetchFailed := err != nil
	if fetchFailed {
		span.RecordError(err)
		s.metrics.FetchError("reddit")
		logging.Warnf("fetch posts for %s failed, continuing with no posts: %v", ticker, err)
		raw = nil
	}

	labeled := s.classifier.ClassifyBatch(raw)
	s.metrics.ObserveLabels(labeled)

	snap := &domain.PulseSnapshot{
		RunID:     uuid.NewString(),
		Ticker:    ticker,
		Limit:     limit,
		FetchedAt: s.clock.Now(),
		Posts:     labeled,
	}
	if fetchFailed {
		return snap, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, snap)
	}
	if s.store != nil && len(labeled) > 0 {
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			logging.Warnf("persist snapshot %s for %s: %v", snap.RunID, ticker, err)
		}
	}
	return snap, nil
}

// Dashboard assembles every view of one ticker. Price failures leave Quote
// nil and History empty rather than failing the whole dashboard.
func (s *PulseService) Dashboard(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "pulse-service.dashboard")
	defer span.End()

	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		quote   *domain.PriceQuote
		history = domain.PriceSeries{}
	)
	if s.prices != nil {
		wg.Add(2)
		go func() {
			defer wg.Done()
			q, err := s.prices.Quote(ctx, ticker)
			if err != nil {
				s.metrics.FetchError("price")
				logging.Warnf("quote for %s unavailable: %v", ticker, err)
				return
			}
			quote = q
		}()
		go func() {
			defer wg.Done()
			h, err := s.prices.History(ctx, ticker, s.opts.HistoryRange, s.opts.HistoryInterval)
			if err != nil {
				s.metrics.FetchError("price")
				logging.Warnf("history for %s unavailable: %v", ticker, err)
				return
			}
			history = h
		}()
	}

	snap, err := s.Snapshot(ctx, ticker, limit, ttl)
	wg.Wait()
	if err != nil {
		return nil, err
	}

	daily := analysis.Aggregate(snap.Posts, domain.GranularityDay)
	return &domain.Dashboard{
		Ticker:       ticker,
		Limit:        limit,
		FetchedAt:    snap.FetchedAt,
		Summary:      analysis.Summarize(snap.Posts),
		Distribution: analysis.Distribution(snap.Posts),
		Daily:        daily,
		Hourly:       analysis.Aggregate(snap.Posts, domain.GranularityHour),
		Recent:       analysis.Recent(snap.Posts, analysis.DefaultRecentCount),
		Quote:        quote,
		History:      history,
		Overlay:      analysis.Overlay(history, daily),
	}, nil
}

func (s *PulseService) Trend(ctx context.Context, ticker string, limit int, ttl time.Duration, g domain.Granularity) (domain.Table, error) {
	snap, err := s.Snapshot(ctx, ticker, limit, ttl)
	if err != nil {
		return domain.Table{}, err
	}
	return analysis.Aggregate(snap.Posts, g), nil
}

func (s *PulseService) RecentPosts(ctx context.Context, ticker string, limit int, ttl time.Duration, n int) ([]domain.LabeledPost, error) {
	snap, err := s.Snapshot(ctx, ticker, limit, ttl)
	if err != nil {
		return nil, err
	}
	return analysis.Recent(snap.Posts, n), nil
}

// Archive builds the daily view from persisted posts and price points of the
// last days days.
func (s *PulseService) Archive(ctx context.Context, ticker string, days int) (*domain.Archive, error) {
	ctx, span := s.tracer.Start(ctx, "pulse-service.archive")
	defer span.End()

	ticker, err := domain.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrArchiveDisabled
	}

	loc := s.classifier.Location()
	since := s.clock.Now().AddDate(0, 0, -days)
	posts, err := s.store.ListPosts(ctx, ticker, since, loc)
	if err != nil {
		return nil, err
	}

	series := domain.PriceSeries{}
	if s.prices != nil {
		stored, err := s.prices.StoredHistory(ctx, ticker, s.opts.HistoryInterval, since, loc)
		if err != nil {
			logging.Warnf("stored prices for %s unavailable: %v", ticker, err)
		} else {
			series = stored
		}
	}

	daily := analysis.Aggregate(posts, domain.GranularityDay)
	return &domain.Archive{
		Ticker:   ticker,
		Days:     days,
		Since:    since,
		Interval: s.opts.HistoryInterval,
		Summary:  analysis.Summarize(posts),
		Daily:    daily,
		Overlay:  analysis.Overlay(series, daily),
	}, nil
}

// relocate returns a copy of snap with CreatedAt in the classifier's zone.
// Snapshots decoded from a shared cache only carry a fixed UTC offset.
func (s *PulseService) relocate(snap *domain.PulseSnapshot) *domain.PulseSnapshot {
	loc := s.classifier.Location()
	out := *snap
	out.Posts = make([]domain.LabeledPost, len(snap.Posts))
	for i, p := range snap.Posts {
		p.CreatedAt = time.Unix(p.Created, 0).In(loc)
		out.Posts[i] = p
	}
	return &out
}
