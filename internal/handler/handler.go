package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
)

type PulseReader interface {
	Dashboard(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.Dashboard, error)
	Trend(ctx context.Context, ticker string, limit int, ttl time.Duration, g domain.Granularity) (domain.Table, error)
	RecentPosts(ctx context.Context, ticker string, limit int, ttl time.Duration, n int) ([]domain.LabeledPost, error)
	Archive(ctx context.Context, ticker string, days int) (*domain.Archive, error)
}

type PriceReader interface {
	Quote(ctx context.Context, ticker string) (*domain.PriceQuote, error)
	History(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error)
}

// Defaults are used when a request omits a query parameter.
type Defaults struct {
	Limit           int
	TTLSecs         int
	HistoryRange    string
	HistoryInterval string
}

type Handler struct {
	tracer   trace.Tracer
	pulse    PulseReader
	prices   PriceReader
	defaults Defaults
	checks   map[string]HealthCheck
}

func New(tracer trace.Tracer, pulse PulseReader, prices PriceReader, defaults Defaults) *Handler {
	return &Handler{
		tracer:   tracer,
		pulse:    pulse,
		prices:   prices,
		defaults: defaults,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/pulse/:ticker", h.GetPulse)
	api.GET("/pulse/:ticker/trend", h.GetTrend)
	api.GET("/pulse/:ticker/posts", h.GetRecentPosts)
	api.GET("/prices/:ticker", h.GetPrice)
	api.GET("/prices/:ticker/history", h.GetPriceHistory)
	api.GET("/archive/:ticker", h.GetArchive)
}

// writeError maps service errors onto status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidTicker):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrPriceUnavailable), errors.Is(err, domain.ErrArchiveDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		logging.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
