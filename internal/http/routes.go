package http

import (
	"time"

	"diplomacy_replay/internal/http/handlers"
	"diplomacy_replay/internal/http/middleware"
	"diplomacy_replay/internal/repository"
	"diplomacy_replay/internal/service"
	"diplomacy_replay/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes монтирует все HTTP маршруты: публичное чтение,
// операторское управление и зрительский WebSocket
func RegisterRoutes(r *gin.Engine, theater *service.Theater, archive *repository.ArchiveRepository, events *repository.EventRepository, hub *ws.Hub, operatorKey string) {
	h := handlers.NewHandler(theater, archive, events, operatorKey)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/operator", middleware.RateLimit(10, time.Minute), h.OperatorLogin)

		// публичное чтение
		api.GET("/status", h.Status)
		api.GET("/games", h.ListGames)
		api.GET("/map", h.MapData)

		// операторское управление: JWT + лимит запросов
		control := api.Group("", middleware.OperatorAuth(), middleware.RateLimit(60, time.Minute))
		{
			control.POST("/playback/play", h.Play)
			control.POST("/playback/pause", h.Pause)
			control.POST("/playback/stop", h.StopPlayback)
			control.POST("/playback/next", h.NextPhase)
			control.POST("/playback/previous", h.PreviousPhase)
			control.POST("/playback/jump", h.JumpToPhase)
			control.POST("/playback/skip", h.SkipGame)
			control.POST("/playback/speed", h.SetSpeed)
			control.POST("/playback/highlight", h.Highlight)
			control.POST("/games", h.ImportGame)
			control.GET("/events", h.RecentEvents)
		}
	}

	wsHandler := ws.NewWSHandler(hub, theater, theater.Snapshot)
	r.GET("/ws", wsHandler.HandleWS())
}
