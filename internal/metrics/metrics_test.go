package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-pulse/internal/domain"
)

func TestObserveLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveLabels([]domain.LabeledPost{
		{Sentiment: domain.SentimentPositive},
		{Sentiment: domain.SentimentPositive},
		{Sentiment: domain.SentimentNegative},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PostsClassified.WithLabelValues("positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostsClassified.WithLabelValues("negative")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PostsClassified.WithLabelValues("neutral")))
}

func TestCountersAndNilReceiver(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.FetchError("reddit")
	m.CacheLookup("memory", true)
	m.CacheLookup("memory", false)
	m.CacheLookup("memory", false)
	m.ObserveProvider("yahoo", time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrors.WithLabelValues("reddit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("memory", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("memory", "miss")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.FetchError("reddit")
		nilMetrics.CacheLookup("redis", true)
		nilMetrics.ObserveLabels([]domain.LabeledPost{{Sentiment: domain.SentimentNeutral}})
		nilMetrics.ObserveProvider("yahoo", time.Now())
	})
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()
	m := New(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/pulse/:ticker", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(Handler(reg)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pulse/TSLA", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `sentiment_pulse_http_request_duration_seconds_count{method="GET",route="/api/pulse/:ticker",status_code="200"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
