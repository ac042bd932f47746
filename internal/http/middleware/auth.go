package middleware

import (
	"net/http"
	"strings"

	"diplomacy_replay/internal/service"

	"github.com/gin-gonic/gin"
)

// OperatorAuth пропускает только запросы с валидным операторским JWT
// в заголовке Authorization: Bearer <token>
func OperatorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		if err := service.ParseOperatorToken(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}
