package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"sentiment-pulse/internal/analysis"
	"sentiment-pulse/internal/domain"
)

// GetPulse godoc
// @Summary      Sentiment dashboard for a ticker
// @Description  Classifies recent posts mentioning the ticker and returns summary, trend tables, recent feed, quote and price overlay
// @Tags         pulse
// @Produce      json
// @Param        ticker  path   string  true   "Ticker symbol (e.g., TSLA)"
// @Param        limit   query  int     false  "Number of posts to analyse (10-200)"
// @Param        ttl     query  int     false  "Cache freshness in seconds (60-3600)"
// @Success      200  {object}  domain.Dashboard
// @Failure      400  {object}  map[string]string
// @Router       /api/pulse/{ticker} [get]
func (h *Handler) GetPulse(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-pulse")
	defer span.End()

	limit := h.limitParam(c)
	span.SetAttributes(attribute.String("ticker", c.Param("ticker")), attribute.Int("limit", limit))

	d, err := h.pulse.Dashboard(ctx, c.Param("ticker"), limit, h.ttlParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetTrend godoc
// @Summary      Sentiment counts over time
// @Description  Returns per-day or per-hour counts of positive, neutral and negative posts
// @Tags         pulse
// @Produce      json
// @Param        ticker       path   string  true   "Ticker symbol"
// @Param        granularity  query  string  false  "day or hour"  default(day)
// @Param        limit        query  int     false  "Number of posts to analyse (10-200)"
// @Param        ttl          query  int     false  "Cache freshness in seconds (60-3600)"
// @Success      200  {object}  domain.Table
// @Failure      400  {object}  map[string]string
// @Router       /api/pulse/{ticker}/trend [get]
func (h *Handler) GetTrend(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-trend")
	defer span.End()

	g, ok := domain.ParseGranularity(c.DefaultQuery("granularity", string(domain.GranularityDay)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                   "unsupported granularity: " + c.Query("granularity"),
			"supported_granularities": []domain.Granularity{domain.GranularityDay, domain.GranularityHour},
		})
		return
	}

	table, err := h.pulse.Trend(ctx, c.Param("ticker"), h.limitParam(c), h.ttlParam(c), g)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// GetRecentPosts godoc
// @Summary      Newest labeled posts
// @Description  Returns the newest posts with their sentiment label
// @Tags         pulse
// @Produce      json
// @Param        ticker  path   string  true   "Ticker symbol"
// @Param        n       query  int     false  "Number of posts to return (1-200)"  default(30)
// @Param        limit   query  int     false  "Number of posts to analyse (10-200)"
// @Param        ttl     query  int     false  "Cache freshness in seconds (60-3600)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/pulse/{ticker}/posts [get]
func (h *Handler) GetRecentPosts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recent-posts")
	defer span.End()

	ticker, err := domain.NormalizeTicker(c.Param("ticker"))
	if err != nil {
		writeError(c, err)
		return
	}
	n := clampInt(intQuery(c, "n", analysis.DefaultRecentCount), 1, 200)
	posts, err := h.pulse.RecentPosts(ctx, ticker, h.limitParam(c), h.ttlParam(c), n)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticker": ticker,
		"posts":  posts,
	})
}
