package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RecentEvents возвращает последние записи журнала воспроизведения (оператор)
func (h *Handler) RecentEvents(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.Events.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
