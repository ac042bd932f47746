package handlers

import (
	"net/http"

	"diplomacy_replay/internal/service"

	"github.com/gin-gonic/gin"
)

// OperatorLogin меняет общий операторский ключ на JWT для управления
// воспроизведением
func (h *Handler) OperatorLogin(c *gin.Context) {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	token, err := service.ExchangeOperatorKey(req.Key, h.OperatorKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
