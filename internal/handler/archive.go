package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetArchive godoc
// @Summary      Persisted sentiment history
// @Description  Daily sentiment counts and price overlay built from stored runs
// @Tags         archive
// @Produce      json
// @Param        ticker  path   string  true   "Ticker symbol"
// @Param        days    query  int     false  "Look-back window in days (1-365)"  default(30)
// @Success      200  {object}  domain.Archive
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/archive/{ticker} [get]
func (h *Handler) GetArchive(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-archive")
	defer span.End()

	days := clampInt(intQuery(c, "days", defaultArchiveDays), 1, maxArchiveDays)
	a, err := h.pulse.Archive(ctx, c.Param("ticker"), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
