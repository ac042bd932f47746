package playback

import (
	"sync"

	"diplomacy_replay/internal/domain"
)

// Lifecycle владеет упорядоченной последовательностью фаз текущей игры
// и индексом отображаемой фазы. Фазы после загрузки не мутируются.
type Lifecycle struct {
	mu    sync.RWMutex
	game  *domain.Game
	index int
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// LoadGame заменяет текущую игру и сбрасывает индекс на 0
func (l *Lifecycle) LoadGame(g *domain.Game) {
	l.mu.Lock()
	l.game = g
	l.index = 0
	l.mu.Unlock()
}

// Game возвращает текущую игру (nil, если не загружена)
func (l *Lifecycle) Game() *domain.Game {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.game
}

// Current возвращает отображаемую фазу или nil в незагруженном состоянии
func (l *Lifecycle) Current() *domain.Phase {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.game == nil || l.index >= len(l.game.Phases) {
		return nil
	}
	return &l.game.Phases[l.index]
}

// Index возвращает текущий индекс фазы
func (l *Lifecycle) Index() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index
}

// Len возвращает число фаз текущей игры
func (l *Lifecycle) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.game == nil {
		return 0
	}
	return len(l.game.Phases)
}

// Advance переходит к следующей фазе; false, если стоим на последней
func (l *Lifecycle) Advance() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game == nil || l.index >= len(l.game.Phases)-1 {
		return false
	}
	l.index++
	return true
}

// Retreat возвращается к предыдущей фазе; false, если стоим на первой
func (l *Lifecycle) Retreat() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game == nil || l.index <= 0 {
		return false
	}
	l.index--
	return true
}

// JumpTo переходит на произвольный индекс; индекс вне [0, len-1] — ошибка
func (l *Lifecycle) JumpTo(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game == nil || index < 0 || index >= len(l.game.Phases) {
		return domain.ErrPhaseOutOfRange
	}
	l.index = index
	return nil
}
