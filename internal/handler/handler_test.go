package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
)

type pulseCall struct {
	ticker string
	limit  int
	ttl    time.Duration
	g      domain.Granularity
	n      int
	days   int
}

type stubPulse struct {
	last pulseCall
	err  error
}

func (s *stubPulse) Dashboard(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.Dashboard, error) {
	s.last = pulseCall{ticker: ticker, limit: limit, ttl: ttl}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Dashboard{Ticker: ticker, Limit: limit, Summary: domain.Summary{Total: 3, Positive: 1, Neutral: 1, Negative: 1}}, nil
}

func (s *stubPulse) Trend(ctx context.Context, ticker string, limit int, ttl time.Duration, g domain.Granularity) (domain.Table, error) {
	s.last = pulseCall{ticker: ticker, limit: limit, ttl: ttl, g: g}
	return domain.Table{Granularity: g, Buckets: []domain.Bucket{}}, s.err
}

func (s *stubPulse) RecentPosts(ctx context.Context, ticker string, limit int, ttl time.Duration, n int) ([]domain.LabeledPost, error) {
	s.last = pulseCall{ticker: ticker, limit: limit, ttl: ttl, n: n}
	return []domain.LabeledPost{{Post: domain.Post{Title: "to the moon"}, Sentiment: domain.SentimentPositive}}, s.err
}

func (s *stubPulse) Archive(ctx context.Context, ticker string, days int) (*domain.Archive, error) {
	s.last = pulseCall{ticker: ticker, days: days}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Archive{Ticker: ticker, Days: days}, nil
}

type stubPrices struct {
	err          error
	rng, interval string
}

func (s *stubPrices) Quote(ctx context.Context, ticker string) (*domain.PriceQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.PriceQuote{Ticker: ticker, Price: 250, ChangePct: -1.2}, nil
}

func (s *stubPrices) History(ctx context.Context, ticker, rng, interval string) (domain.PriceSeries, error) {
	s.rng, s.interval = rng, interval
	if s.err != nil {
		return nil, s.err
	}
	return domain.PriceSeries{{Time: time.Unix(0, 0).UTC(), Close: 1}}, nil
}

func newTestRouter(pulse *stubPulse, prices *stubPrices, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(trace.NewNoopTracerProvider().Tracer("test"), pulse, prices, Defaults{
		Limit:           50,
		TTLSecs:         600,
		HistoryRange:    "7d",
		HistoryInterval: "1h",
	})
	h.RegisterRoutes(r, apiKey)
	return r
}

func get(r *gin.Engine, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPulseDefaultsAndClamping(t *testing.T) {
	pulse := &stubPulse{}
	r := newTestRouter(pulse, &stubPrices{}, "")

	w := get(r, "/api/pulse/TSLA")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pulseCall{ticker: "TSLA", limit: 50, ttl: 600 * time.Second}, pulse.last)

	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 3, d.Summary.Total)

	tests := []struct {
		query string
		limit int
		ttl   time.Duration
	}{
		{"limit=5&ttl=10", 10, 60 * time.Second},
		{"limit=500&ttl=99999", 200, 3600 * time.Second},
		{"limit=120&ttl=900", 120, 900 * time.Second},
		{"limit=abc&ttl=", 50, 600 * time.Second},
	}
	for _, tt := range tests {
		w := get(r, "/api/pulse/GME?"+tt.query)
		require.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.limit, pulse.last.limit, tt.query)
		assert.Equal(t, tt.ttl, pulse.last.ttl, tt.query)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: %q", domain.ErrInvalidTicker, "x y"), http.StatusBadRequest},
		{domain.ErrPriceUnavailable, http.StatusServiceUnavailable},
		{domain.ErrArchiveDisabled, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newTestRouter(&stubPulse{err: tt.err}, &stubPrices{err: tt.err}, "")
		assert.Equal(t, tt.code, get(r, "/api/pulse/TSLA").Code, tt.err.Error())
		assert.Equal(t, tt.code, get(r, "/api/prices/TSLA").Code, tt.err.Error())
		assert.Equal(t, tt.code, get(r, "/api/archive/TSLA").Code, tt.err.Error())
	}
}

func TestGetTrend(t *testing.T) {
	pulse := &stubPulse{}
	r := newTestRouter(pulse, &stubPrices{}, "")

	w := get(r, "/api/pulse/TSLA/trend")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.GranularityDay, pulse.last.g)

	w = get(r, "/api/pulse/TSLA/trend?granularity=hour")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.GranularityHour, pulse.last.g)

	w = get(r, "/api/pulse/TSLA/trend?granularity=week")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecentPosts(t *testing.T) {
	pulse := &stubPulse{}
	r := newTestRouter(pulse, &stubPrices{}, "")

	w := get(r, "/api/pulse/TSLA/posts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, pulse.last.n)

	w = get(r, "/api/pulse/TSLA/posts?n=0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, pulse.last.n)

	var body struct {
		Ticker string               `json:"ticker"`
		Posts  []domain.LabeledPost `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Posts, 1)
	assert.Equal(t, domain.SentimentPositive, body.Posts[0].Sentiment)
}

func TestTickerIsNormalizedInResponses(t *testing.T) {
	pulse := &stubPulse{}
	r := newTestRouter(pulse, &stubPrices{}, "")

	w := get(r, "/api/pulse/tsla%20/posts")
	require.Equal(t, http.StatusOK, w.Code)
	var posts struct {
		Ticker string `json:"ticker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Equal(t, "TSLA", posts.Ticker)
	assert.Equal(t, "TSLA", pulse.last.ticker)

	w = get(r, "/api/prices/$gme/history")
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Ticker string `json:"ticker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, "GME", history.Ticker)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/pulse/b@d!/posts").Code)
}

func TestGetPriceAndHistory(t *testing.T) {
	prices := &stubPrices{}
	r := newTestRouter(&stubPulse{}, prices, "")

	w := get(r, "/api/prices/TSLA")
	require.Equal(t, http.StatusOK, w.Code)
	var q domain.PriceQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 250.0, q.Price)

	w = get(r, "/api/prices/TSLA/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7d", prices.rng)
	assert.Equal(t, "1h", prices.interval)

	w = get(r, "/api/prices/TSLA/history?range=1mo&interval=1d")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1mo", prices.rng)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/prices/TSLA/history?range=forever").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/prices/TSLA/history?interval=7m").Code)
}

func TestGetArchiveDays(t *testing.T) {
	pulse := &stubPulse{}
	r := newTestRouter(pulse, &stubPrices{}, "")

	require.Equal(t, http.StatusOK, get(r, "/api/archive/TSLA").Code)
	assert.Equal(t, 30, pulse.last.days)

	require.Equal(t, http.StatusOK, get(r, "/api/archive/TSLA?days=9999").Code)
	assert.Equal(t, 365, pulse.last.days)
}

func TestAPIKeyAuth(t *testing.T) {
	r := newTestRouter(&stubPulse{}, &stubPrices{}, "secret")

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/prices/TSLA").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/prices/TSLA", "X-API-Key", "wrong").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/prices/TSLA", "X-API-Key", "secret").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/prices/TSLA", "Authorization", "Bearer secret").Code)
	assert.Equal(t, http.StatusOK, get(r, "/health").Code, "health stays public")
}

func TestAPIKeyAuthRotation(t *testing.T) {
	r := newTestRouter(&stubPulse{}, &stubPrices{}, "old-key, new-key")

	assert.Equal(t, http.StatusOK, get(r, "/api/prices/TSLA", "X-API-Key", "old-key").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/prices/TSLA", "X-API-Key", "new-key").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/prices/TSLA", "X-API-Key", "old-key, new-key").Code)
}
