package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"sentiment-pulse/internal/domain"
)

// GetPrice godoc
// @Summary      Latest close for a ticker
// @Description  Returns the latest close and the percent change against the previous close
// @Tags         prices
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol (e.g., TSLA)"
// @Success      200  {object}  domain.PriceQuote
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/prices/{ticker} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", c.Param("ticker")))

	q, err := h.prices.Quote(ctx, c.Param("ticker"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetPriceHistory godoc
// @Summary      Closing price series
// @Description  Returns closes over a range (e.g. 7d, 1mo) sampled at an interval (e.g. 1h, 1d)
// @Tags         prices
// @Produce      json
// @Param        ticker    path   string  true   "Ticker symbol"
// @Param        range     query  string  false  "History range"     default(7d)
// @Param        interval  query  string  false  "Sample interval"   default(1h)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/prices/{ticker}/history [get]
func (h *Handler) GetPriceHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price-history")
	defer span.End()

	rng := c.DefaultQuery("range", h.defaults.HistoryRange)
	if !historyRangePattern.MatchString(rng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported range: " + rng})
		return
	}
	interval := c.DefaultQuery("interval", h.defaults.HistoryInterval)
	if !historyIntervals[interval] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported interval: " + interval})
		return
	}
	span.SetAttributes(attribute.String("range", rng), attribute.String("interval", interval))

	ticker, err := domain.NormalizeTicker(c.Param("ticker"))
	if err != nil {
		writeError(c, err)
		return
	}
	series, err := h.prices.History(ctx, ticker, rng, interval)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticker":   ticker,
		"range":    rng,
		"interval": interval,
		"points":   series,
	})
}
