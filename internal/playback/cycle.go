package playback

import (
	"context"
	"errors"
	"sync"

	"diplomacy_replay/internal/domain"
	"diplomacy_replay/internal/logger"
)

// GameSource — внешний источник данных игр: отдает следующую игру после
// заданного идентификатора и domain.ErrNoMoreGames, когда архив исчерпан.
type GameSource interface {
	NextGame(ctx context.Context, afterID int64) (*domain.Game, error)
}

// Cycle закрывает петлю игра-за-игрой: по подтвержденной победе загружает
// следующую игру и сбрасывает состояние воспроизведения.
type Cycle struct {
	mu         sync.Mutex
	source     GameSource
	lifecycle  *Lifecycle
	controller *Controller
	detector   *Detector
	autoplay   bool
	currentID  int64
	exhausted  bool
	onLoad     func(g *domain.Game) // хук для подготовки сцены под новую игру
}

func NewCycle(source GameSource, lifecycle *Lifecycle, controller *Controller, detector *Detector, autoplay bool) *Cycle {
	return &Cycle{
		source:     source,
		lifecycle:  lifecycle,
		controller: controller,
		detector:   detector,
		autoplay:   autoplay,
	}
}

// SetOnLoad устанавливает хук, вызываемый после загрузки каждой игры
func (c *Cycle) SetOnLoad(fn func(g *domain.Game)) {
	c.mu.Lock()
	c.onLoad = fn
	c.mu.Unlock()
}

// CurrentID возвращает идентификатор текущей игры (0 — ничего не загружено)
func (c *Cycle) CurrentID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentID
}

// Exhausted — true, когда архив исчерпан (терминальное состояние,
// отличимое от паузы)
func (c *Cycle) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// LoadFirst загружает первую доступную игру при старте
func (c *Cycle) LoadFirst(ctx context.Context) error {
	return c.advanceGame(ctx)
}

// OnVictoryConfirmed вызывается только после того, как детектор подтвердил
// минимальный dwell — никогда посреди обнаружения.
func (c *Cycle) OnVictoryConfirmed(ctx context.Context) error {
	return c.advanceGame(ctx)
}

func (c *Cycle) advanceGame(ctx context.Context) error {
	c.mu.Lock()
	afterID := c.currentID
	c.mu.Unlock()

	game, err := c.source.NextGame(ctx, afterID)
	if err != nil {
		if errors.Is(err, domain.ErrNoMoreGames) {
			// явный терминальный сигнал, не тихая остановка
			c.mu.Lock()
			c.exhausted = true
			c.mu.Unlock()
			c.controller.Stop()
			logger.Warn("cycle: все игры исчерпаны", "last_game", afterID)
			return err
		}
		logger.Error("cycle: не удалось загрузить следующую игру", "after", afterID, "error", err)
		return err
	}

	c.controller.Stop()
	c.lifecycle.LoadGame(game)
	c.detector.Reset()

	c.mu.Lock()
	c.currentID = game.ID
	c.exhausted = false
	onLoad := c.onLoad
	autoplay := c.autoplay
	c.mu.Unlock()

	if onLoad != nil {
		onLoad(game)
	}

	logger.Info("cycle: игра загружена", "game", game.ID, "title", game.Title, "phases", len(game.Phases))

	// продолжаем автовоспроизведение между играми; в ручном режиме
	// остаемся в Stopped
	if autoplay {
		c.controller.Play()
	}
	return nil
}
