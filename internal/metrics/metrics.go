package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentiment-pulse/internal/domain"
)

const namespace = "sentiment_pulse"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Metrics groups the pipeline counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	PostsClassified  *prometheus.CounterVec
	FetchErrors      *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	RequestDuration  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PostsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_classified_total",
			Help:      "Posts labeled by the sentiment classifier, by label.",
		}, []string{"sentiment"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed upstream fetches, by source.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis_cache",
			Name:      "lookups_total",
			Help:      "Analysis cache lookups, by layer and result.",
		}, []string{"layer", "result"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Duration of upstream provider requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(m.PostsClassified, m.FetchErrors, m.CacheLookups, m.ProviderDuration, m.RequestDuration)
	return m
}

func (m *Metrics) ObserveLabels(posts []domain.LabeledPost) {
	if m == nil {
		return
	}
	for _, p := range posts {
		m.PostsClassified.WithLabelValues(string(p.Sentiment)).Inc()
	}
}

func (m *Metrics) FetchError(source string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(source).Inc()
}

func (m *Metrics) CacheLookup(layer string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(layer, result).Inc()
}

func (m *Metrics) ObserveProvider(source string, started time.Time) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// Middleware records request durations by route template. /metrics and
// /health are skipped.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if m == nil || route == "/metrics" || route == "/health" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
