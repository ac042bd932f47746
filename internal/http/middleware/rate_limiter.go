package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"diplomacy_replay/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var rateLimiterClient *redis.Client

// InitRedisRateLimiter подключает redis для лимитирования запросов.
// Пустой адрес или недоступный redis — лимитер выключен (fail-open):
// деградация управления хуже, чем отсутствие лимита.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		logger.Warn("rate limiter: REDIS_ADDR не задан, лимитер отключен")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("rate limiter: redis недоступен, лимитер отключен", "addr", addr, "error", err)
		return
	}

	rateLimiterClient = client
	logger.Info("rate limiter: redis подключен", "addr", addr)
}

// RateLimit ограничивает число запросов с одного IP фиксированным окном
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimiterClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		ctx := c.Request.Context()

		count, err := rateLimiterClient.Incr(ctx, key).Result()
		if err != nil {
			// redis отвалился на лету — пропускаем запрос
			c.Next()
			return
		}
		if count == 1 {
			rateLimiterClient.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
