package playback

import (
	"errors"
	"testing"

	"diplomacy_replay/internal/domain"
)

func testGame(id int64, phases int) *domain.Game {
	g := &domain.Game{ID: id, Title: "test"}
	for i := 0; i < phases; i++ {
		g.Phases = append(g.Phases, domain.Phase{Name: phaseName(i)})
	}
	return g
}

func phaseName(i int) string {
	names := []string{"S1901M", "F1901M", "W1901A", "S1902M", "F1902M"}
	if i < len(names) {
		return names[i]
	}
	return "X"
}

func TestLifecycleUnloaded(t *testing.T) {
	l := NewLifecycle()
	if l.Current() != nil {
		t.Error("до загрузки Current должен быть nil")
	}
	if l.Advance() || l.Retreat() {
		t.Error("до загрузки Advance/Retreat должны вернуть false")
	}
	if err := l.JumpTo(0); !errors.Is(err, domain.ErrPhaseOutOfRange) {
		t.Errorf("JumpTo без игры: %v, ожидался ErrPhaseOutOfRange", err)
	}
}

func TestLifecycleAdvanceRetreat(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 3))

	if l.Index() != 0 {
		t.Fatalf("после загрузки индекс %d, ожидался 0", l.Index())
	}
	if !l.Advance() || l.Index() != 1 {
		t.Fatalf("первый Advance: индекс %d", l.Index())
	}
	if !l.Advance() || l.Index() != 2 {
		t.Fatalf("второй Advance: индекс %d", l.Index())
	}
	// стоим на последней фазе
	if l.Advance() {
		t.Error("Advance за последней фазой должен вернуть false")
	}
	if l.Index() != 2 {
		t.Errorf("индекс уехал за границу: %d", l.Index())
	}

	if !l.Retreat() || l.Index() != 1 {
		t.Fatalf("Retreat: индекс %d", l.Index())
	}
	l.Retreat()
	if l.Retreat() {
		t.Error("Retreat на нулевой фазе должен вернуть false")
	}
}

func TestLifecycleJumpTo(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 4))

	if err := l.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3): %v", err)
	}
	if l.Current().Name != phaseName(3) {
		t.Errorf("после JumpTo текущая фаза %q", l.Current().Name)
	}

	for _, idx := range []int{-1, 4, 100} {
		if err := l.JumpTo(idx); !errors.Is(err, domain.ErrPhaseOutOfRange) {
			t.Errorf("JumpTo(%d): %v, ожидался ErrPhaseOutOfRange", idx, err)
		}
	}
	// неудачный прыжок не двигает индекс
	if l.Index() != 3 {
		t.Errorf("индекс изменился после неудачного прыжка: %d", l.Index())
	}
}

func TestLoadGameResetsIndex(t *testing.T) {
	l := NewLifecycle()
	l.LoadGame(testGame(1, 3))
	l.Advance()
	l.Advance()

	l.LoadGame(testGame(2, 2))
	if l.Index() != 0 {
		t.Errorf("после загрузки новой игры индекс %d, ожидался 0", l.Index())
	}
	if l.Game().ID != 2 {
		t.Errorf("текущая игра %d, ожидалась 2", l.Game().ID)
	}
}
