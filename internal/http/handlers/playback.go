package handlers

import (
	"errors"
	"net/http"
	"time"

	"diplomacy_replay/internal/domain"

	"github.com/gin-gonic/gin"
)

// Поверхность управления воспроизведением — те же операции, что доступны
// операторам по WebSocket

func (h *Handler) Play(c *gin.Context) {
	h.Theater.Play()
	c.JSON(http.StatusOK, h.Theater.Status())
}

func (h *Handler) Pause(c *gin.Context) {
	h.Theater.Pause()
	c.JSON(http.StatusOK, h.Theater.Status())
}

func (h *Handler) StopPlayback(c *gin.Context) {
	h.Theater.Stop()
	c.JSON(http.StatusOK, h.Theater.Status())
}

// ручное продвижение; во время Playing игнорируется
func (h *Handler) NextPhase(c *gin.Context) {
	moved := h.Theater.Next()
	c.JSON(http.StatusOK, gin.H{"moved": moved, "status": h.Theater.Status()})
}

func (h *Handler) PreviousPhase(c *gin.Context) {
	moved := h.Theater.Previous()
	c.JSON(http.StatusOK, gin.H{"moved": moved, "status": h.Theater.Status()})
}

func (h *Handler) JumpToPhase(c *gin.Context) {
	var req struct {
		Index int `json:"index"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Theater.JumpTo(req.Index); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhaseOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "phase index out of range"})
		case errors.Is(err, domain.ErrPlaybackActive):
			c.JSON(http.StatusConflict, gin.H{"error": "pause playback before jumping"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "jump failed"})
		}
		return
	}

	c.JSON(http.StatusOK, h.Theater.Status())
}

// SetSpeed меняет интервал автопродвижения фаз
func (h *Handler) SetSpeed(c *gin.Context) {
	var req struct {
		IntervalMs int64 `json:"interval_ms"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.IntervalMs < 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interval_ms must be at least 100"})
		return
	}

	h.Theater.SetAdvanceInterval(time.Duration(req.IntervalMs) * time.Millisecond)
	c.JSON(http.StatusOK, h.Theater.Status())
}

// SkipGame принудительно переключает показ на следующую игру архива
func (h *Handler) SkipGame(c *gin.Context) {
	if err := h.Theater.SkipGame(); err != nil {
		if errors.Is(err, domain.ErrNoMoreGames) {
			c.JSON(http.StatusConflict, gin.H{"error": "no more games", "status": h.Theater.Status()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "skip failed"})
		return
	}
	c.JSON(http.StatusOK, h.Theater.Status())
}

func (h *Handler) Highlight(c *gin.Context) {
	var req struct {
		Entity string `json:"entity"`
	}
	if err := c.BindJSON(&req); err != nil || req.Entity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	// неизвестная сущность деградирует до no-op внутри планировщика
	h.Theater.Highlight(req.Entity)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Status — публичное чтение текущего состояния воспроизведения
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.Theater.Status())
}
