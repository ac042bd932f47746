package playback

import (
	"testing"
	"time"

	"diplomacy_replay/internal/domain"
)

const testInterval = 30 * time.Millisecond

func TestControllerInitialState(t *testing.T) {
	c := NewController(NewLifecycle(), testInterval)
	if c.State() != domain.StateStopped {
		t.Errorf("начальное состояние %q, ожидалось stopped", c.State())
	}
}

func TestAutoAdvanceScenario(t *testing.T) {
	// игра из 3 фаз; спустя чуть больше двух интервалов индекс = 2
	// и состояние все еще playing
	l := NewLifecycle()
	l.LoadGame(testGame(1, 3))
	c := NewController(l, testInterval)
	defer c.Stop()

	c.Play()
	time.Sleep(2*testInterval + testInterval/2)

	if got := l.Index(); got != 2 {
		t.Errorf("после 2.5 интервалов индекс %d, ожидался 2", got)
	}
	if c.State() != domain.StatePlaying {
		t.Errorf("состояние %q, ожидалось playing", c.State())
	}

	// конец игры достигнут: контроллер не зацикливается и остается playing
	time.Sleep(2 * testInterval)
	if got := l.Index(); got != 2 {
		t.Errorf("индекс уехал за конец игры: %d", got)
	}
	if c.State() != domain.StatePlaying {
		t.Errorf("на конце игры состояние %q, ожидалось playing", c.State())
	}
}

func TestPauseDisarmsTimer(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 5))
	c := NewController(l, testInterval)
	defer c.Stop()

	c.Play()
	time.Sleep(testInterval + testInterval/2)
	c.Pause()

	idx := l.Index()
	if c.State() != domain.StatePaused {
		t.Fatalf("состояние %q, ожидалось paused", c.State())
	}

	// после паузы ни один зависший тик не должен сработать
	time.Sleep(3 * testInterval)
	if got := l.Index(); got != idx {
		t.Errorf("фаза продвинулась после паузы: %d -> %d", idx, got)
	}
}

func TestStopKeepsIndex(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 5))
	c := NewController(l, testInterval)

	c.Play()
	time.Sleep(testInterval + testInterval/2)
	c.Stop()

	if c.State() != domain.StateStopped {
		t.Fatalf("состояние %q, ожидалось stopped", c.State())
	}
	if l.Index() == 0 {
		t.Skip("таймер не успел сработать, нечего проверять")
	}
	// stop не сбрасывает индекс
	idx := l.Index()
	time.Sleep(2 * testInterval)
	if l.Index() != idx {
		t.Errorf("индекс изменился после stop")
	}
}

func TestManualOpsIgnoredWhilePlaying(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 5))
	// длинный интервал: таймер в тесте не успеет сработать
	c := NewController(l, time.Minute)
	defer c.Stop()

	c.Play()
	if c.ManualNext() {
		t.Error("ManualNext во время playing должен игнорироваться")
	}
	if c.ManualPrevious() {
		t.Error("ManualPrevious во время playing должен игнорироваться")
	}
	if l.Index() != 0 {
		t.Errorf("ручная операция сдвинула индекс: %d", l.Index())
	}
}

func TestManualOpsWhilePaused(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 3))
	c := NewController(l, time.Minute)

	if !c.ManualNext() || l.Index() != 1 {
		t.Errorf("ManualNext в stopped: индекс %d", l.Index())
	}

	c.Play()
	c.Pause()
	if !c.ManualNext() || l.Index() != 2 {
		t.Errorf("ManualNext в paused: индекс %d", l.Index())
	}
	if !c.ManualPrevious() || l.Index() != 1 {
		t.Errorf("ManualPrevious в paused: индекс %d", l.Index())
	}
}

func TestPlayWhilePlayingIsNoop(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 5))
	c := NewController(l, testInterval)
	defer c.Stop()

	c.Play()
	c.Play() // второй Play не должен запустить второй таймер

	time.Sleep(testInterval + testInterval/2)
	if got := l.Index(); got != 1 {
		t.Errorf("после одного интервала индекс %d, ожидался 1 (двойной таймер?)", got)
	}
}

func TestNoAdvanceAfterPauseReturns(t *testing.T) {
	// тик, проскочивший проверку stop до закрытия канала, не должен
	// продвигать фазу после возврата из Pause: гонку ловим повторами
	l := NewLifecycle()
	l.LoadGame(testGame(1, 1000))
	c := NewController(l, time.Millisecond)
	defer c.Stop()

	for i := 0; i < 50; i++ {
		c.Play()
		time.Sleep(time.Millisecond)
		c.Pause()

		idx := l.Index()
		time.Sleep(3 * time.Millisecond)
		if got := l.Index(); got != idx {
			t.Fatalf("итерация %d: фаза продвинулась после Pause: %d -> %d", i, idx, got)
		}
	}
}

func TestSetIntervalTakesEffectOnNextPlay(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 5))
	// стартуем с заведомо недостижимым интервалом
	c := NewController(l, time.Hour)
	defer c.Stop()

	c.Play()
	c.SetInterval(testInterval)
	if got := c.Interval(); got != testInterval {
		t.Fatalf("Interval() = %v, ожидалось %v", got, testInterval)
	}

	// действующий таймер не трогаем: перевзвод на pause/play
	c.Pause()
	c.Play()
	time.Sleep(testInterval + testInterval/2)
	if l.Index() == 0 {
		t.Error("новый интервал не применился после перезапуска")
	}
}

func TestOnAdvanceCallback(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 2))
	c := NewController(l, testInterval)
	defer c.Stop()

	moves := make(chan bool, 8)
	c.SetOnAdvance(func(moved bool) { moves <- moved })

	c.Play()

	select {
	case moved := <-moves:
		if !moved {
			t.Error("первое срабатывание должно продвинуть фазу")
		}
	case <-time.After(5 * testInterval):
		t.Fatal("callback не вызван")
	}

	// вторая фаза последняя: следующее срабатывание с moved=false
	select {
	case moved := <-moves:
		if moved {
			t.Error("на конце игры ожидалось moved=false")
		}
	case <-time.After(5 * testInterval):
		t.Fatal("callback на конце игры не вызван")
	}
}
