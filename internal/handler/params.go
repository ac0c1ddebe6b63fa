package handler

import (
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sentiment-pulse/internal/config"
)

const (
	defaultArchiveDays = 30
	maxArchiveDays     = 365
)

var (
	historyRangePattern = regexp.MustCompile(`^([1-9][0-9]{0,2}(d|mo|y)|ytd|max)$`)
	historyIntervals    = map[string]bool{
		"1m": true, "2m": true, "5m": true, "15m": true, "30m": true, "60m": true, "90m": true,
		"1h": true, "1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true,
	}
)

// intQuery parses an integer query parameter, returning def when it is
// missing or malformed.
func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (h *Handler) limitParam(c *gin.Context) int {
	return config.ClampLimit(intQuery(c, "limit", h.defaults.Limit))
}

func (h *Handler) ttlParam(c *gin.Context) time.Duration {
	return time.Duration(config.ClampTTLSecs(intQuery(c, "ttl", h.defaults.TTLSecs))) * time.Second
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
