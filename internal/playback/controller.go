package playback

import (
	"sync"
	"time"

	"diplomacy_replay/internal/domain"
	"diplomacy_replay/internal/logger"
)

// Controller — конечный автомат воспроизведения: Stopped -> Playing <-> Paused.
// В Playing повторяющийся таймер зовет Lifecycle.Advance; каждый уход из
// Playing синхронно снимает таймер — ни один зависший тик не сработает после
// pause/stop.
type Controller struct {
	mu        sync.Mutex
	state     string
	interval  time.Duration
	lifecycle *Lifecycle
	stop      chan struct{} // закрывается при каждом уходе из Playing
	onAdvance func(moved bool)
}

func NewController(lifecycle *Lifecycle, interval time.Duration) *Controller {
	return &Controller{
		state:     domain.StateStopped,
		interval:  interval,
		lifecycle: lifecycle,
	}
}

// SetOnAdvance устанавливает callback, вызываемый на каждое срабатывание
// таймера (и только таймера). moved=false означает конец игры: контроллер
// остается в Playing и отдает решение детектору победы.
func (c *Controller) SetOnAdvance(fn func(moved bool)) {
	c.mu.Lock()
	c.onAdvance = fn
	c.mu.Unlock()
}

// State возвращает текущее состояние воспроизведения
func (c *Controller) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Interval возвращает интервал автопродвижения
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetInterval меняет интервал; действует со следующего Play
func (c *Controller) SetInterval(d time.Duration) {
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
}

// Play переводит Stopped/Paused -> Playing и взводит повторяющийся таймер
func (c *Controller) Play() {
	c.mu.Lock()
	if c.state == domain.StatePlaying {
		c.mu.Unlock()
		return
	}
	c.state = domain.StatePlaying
	stop := make(chan struct{})
	c.stop = stop
	interval := c.interval
	c.mu.Unlock()

	logger.Info("playback: play", "interval", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// снятие таймера могло случиться между срабатыванием и
				// обработкой; продвигаем под мьютексом только пока наш
				// stop все еще действующий — после возврата из Pause/Stop
				// ни один тик не продвинет фазу
				c.mu.Lock()
				if c.stop != stop {
					c.mu.Unlock()
					return
				}
				moved := c.lifecycle.Advance()
				fn := c.onAdvance
				c.mu.Unlock()
				if fn != nil {
					fn(moved)
				}
			case <-stop:
				return
			}
		}
	}()
}

// Pause переводит Playing -> Paused и снимает таймер; фаза не меняется
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StatePlaying {
		return
	}
	c.disarmLocked()
	c.state = domain.StatePaused
	logger.Info("playback: pause", "phase", c.lifecycle.Index())
}

// Stop переводит любое состояние -> Stopped; индекс фазы не сбрасывается
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked()
	c.state = domain.StateStopped
}

func (c *Controller) disarmLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// ManualNext продвигает фазу вручную. Во время Playing игнорируется,
// чтобы не гоняться с таймером.
func (c *Controller) ManualNext() bool {
	c.mu.Lock()
	if c.state == domain.StatePlaying {
		c.mu.Unlock()
		logger.Debug("playback: manual next ignored while playing")
		return false
	}
	c.mu.Unlock()
	return c.lifecycle.Advance()
}

// ManualPrevious отступает на фазу назад; игнорируется во время Playing
func (c *Controller) ManualPrevious() bool {
	c.mu.Lock()
	if c.state == domain.StatePlaying {
		c.mu.Unlock()
		logger.Debug("playback: manual previous ignored while playing")
		return false
	}
	c.mu.Unlock()
	return c.lifecycle.Retreat()
}
