package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MapData отдает файл координат активного варианта карты для фронтенда
func (h *Handler) MapData(c *gin.Context) {
	md := h.Theater.MapData()
	if md == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "map data not loaded"})
		return
	}
	c.JSON(http.StatusOK, md)
}
