package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/cache"
	"sentiment-pulse/internal/config"
	"sentiment-pulse/internal/db"
	"sentiment-pulse/internal/handler"
	"sentiment-pulse/internal/metrics"
	"sentiment-pulse/internal/provider"
	"sentiment-pulse/internal/repository"
	"sentiment-pulse/internal/service"
)

type deps struct {
	tracer  trace.Tracer
	metrics *metrics.Metrics
	clock   clockwork.Clock
}

func newRedditProvider(cfg *config.Config, d *deps) *provider.RedditProvider {
	return provider.NewRedditProvider(d.tracer, d.metrics, provider.RedditOptions{
		Subreddit:      cfg.RedditSubreddit,
		UserAgent:      cfg.RedditUserAgent,
		Sort:           cfg.RedditSearchSort,
		RequestsPerMin: cfg.RedditRequestsPerMin,
	})
}

// The helpers below return untyped nil when a backend is not configured so
// the services see a nil interface rather than a nil pointer.

func postStore(tracer trace.Tracer) service.PostStore {
	if db.Pool == nil {
		return nil
	}
	return repository.NewPostRepository(db.Pool, tracer)
}

func priceStore(tracer trace.Tracer) service.PriceStore {
	if db.Pool == nil {
		return nil
	}
	return repository.NewPriceRepository(db.Pool, tracer)
}

func quoteCache() service.RedisClient {
	if cache.Client == nil {
		return nil
	}
	return cache.Client
}

func analysisCache(d *deps) cache.AnalysisCache {
	if cache.Client != nil {
		return cache.NewRedisAnalysisCache(cache.Client, d.clock, d.metrics)
	}
	return cache.NewMemoryAnalysisCache(d.clock, d.metrics)
}

func registerHealthChecks(h *handler.Handler) {
	if pool := db.Pool; pool != nil {
		h.AddHealthCheck("postgres", func(ctx context.Context) error { return pool.Ping(ctx) })
	}
	if client := cache.Client; client != nil {
		h.AddHealthCheck("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}
}
