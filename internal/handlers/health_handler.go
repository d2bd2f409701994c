package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Liveness check
// @Description Always 200 while the process serves requests. Includes the last upstream probe result when probing is enabled.
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]interface{} "{status: ok, timestamp, upstream?}"
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if h.prober != nil {
		if status := h.prober.Status(); status != nil {
			body["upstream"] = status
		}
	}
	c.JSON(http.StatusOK, body)
}
