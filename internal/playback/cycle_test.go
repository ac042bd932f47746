package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"diplomacy_replay/internal/domain"
)

// источник игр в памяти для тестов
type fakeSource struct {
	games []*domain.Game
	calls int
}

func (s *fakeSource) NextGame(_ context.Context, afterID int64) (*domain.Game, error) {
	s.calls++
	for _, g := range s.games {
		if g.ID > afterID {
			return g, nil
		}
	}
	return nil, domain.ErrNoMoreGames
}

func newCycleFixture(autoplay bool, games ...*domain.Game) (*Cycle, *Lifecycle, *Controller, *Detector) {
	l := NewLifecycle()
	c := NewController(l, time.Minute)
	d := NewDetector(nil)
	cy := NewCycle(&fakeSource{games: games}, l, c, d, autoplay)
	return cy, l, c, d
}

func TestCycleLoadFirst(t *testing.T) {
	cy, l, c, _ := newCycleFixture(false, testGame(1, 3), testGame(2, 2))
	defer c.Stop()

	if err := cy.LoadFirst(context.Background()); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if cy.CurrentID() != 1 || l.Game().ID != 1 {
		t.Errorf("загружена игра %d, ожидалась 1", cy.CurrentID())
	}
	if l.Index() != 0 {
		t.Errorf("индекс фазы %d, ожидался 0", l.Index())
	}
	// ручной режим: после загрузки остаемся в stopped
	if c.State() != domain.StateStopped {
		t.Errorf("состояние %q, ожидалось stopped", c.State())
	}
}

func TestCycleVictoryAdvancesGame(t *testing.T) {
	cy, l, c, d := newCycleFixture(true, testGame(1, 3), testGame(2, 2))
	defer c.Stop()

	if err := cy.LoadFirst(context.Background()); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	l.Advance()
	l.Advance()
	d.Observe("FRANCE WINS", at(0))
	d.Observe("FRANCE WINS", at(30))

	if err := cy.OnVictoryConfirmed(context.Background()); err != nil {
		t.Fatalf("OnVictoryConfirmed: %v", err)
	}

	if cy.CurrentID() != 2 {
		t.Errorf("текущая игра %d, ожидалась 2", cy.CurrentID())
	}
	if l.Index() != 0 {
		t.Errorf("индекс не сброшен: %d", l.Index())
	}
	if d.Detected() {
		t.Error("детектор не сброшен при загрузке новой игры")
	}
	// autoplay продолжается между играми
	if c.State() != domain.StatePlaying {
		t.Errorf("состояние %q, ожидалось playing", c.State())
	}
}

func TestCycleExhaustion(t *testing.T) {
	cy, _, c, _ := newCycleFixture(true, testGame(1, 2))
	defer c.Stop()

	if err := cy.LoadFirst(context.Background()); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}

	// игр больше нет: явный терминальный сигнал, отличимый от паузы
	err := cy.OnVictoryConfirmed(context.Background())
	if !errors.Is(err, domain.ErrNoMoreGames) {
		t.Fatalf("ожидался ErrNoMoreGames, получено: %v", err)
	}
	if !cy.Exhausted() {
		t.Error("Exhausted должен быть true")
	}
	if c.State() != domain.StateStopped {
		t.Errorf("после исчерпания состояние %q, ожидалось stopped", c.State())
	}

	// повторный вызов стабильно возвращает тот же сигнал
	if err := cy.OnVictoryConfirmed(context.Background()); !errors.Is(err, domain.ErrNoMoreGames) {
		t.Errorf("повторный вызов: %v", err)
	}
}

func TestCycleOnLoadHook(t *testing.T) {
	cy, _, c, _ := newCycleFixture(false, testGame(7, 2))
	defer c.Stop()

	var loaded []int64
	cy.SetOnLoad(func(g *domain.Game) { loaded = append(loaded, g.ID) })

	if err := cy.LoadFirst(context.Background()); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != 7 {
		t.Errorf("хук загрузки: %v", loaded)
	}
}
