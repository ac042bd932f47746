package playback

import (
	"testing"
	"time"
)

func at(sec int) time.Time {
	return time.Unix(int64(sec), 0)
}

func TestDetectorScenario(t *testing.T) {
	// "FRANCE WINS" в t=0 и t=5 при пороге 4с:
	// не завершено до t=4, завершено при t>=4
	d := NewDetector(nil)

	d.Observe("FRANCE WINS", at(0))
	if d.IsComplete(4 * time.Second) {
		t.Fatal("завершено сразу после первого обнаружения")
	}

	d.Observe("FRANCE WINS", at(3))
	if d.IsComplete(4 * time.Second) {
		t.Fatal("завершено при dwell=3s < 4s")
	}

	d.Observe("FRANCE WINS", at(5))
	if !d.IsComplete(4 * time.Second) {
		t.Fatal("не завершено при dwell=5s >= 4s")
	}
}

func TestDetectorCaseInsensitive(t *testing.T) {
	d := NewDetector([]string{"WINS"})
	d.Observe("germany wins the game", at(0))
	if !d.Detected() {
		t.Error("совпадение должно быть регистронезависимым")
	}
}

func TestDetectorResetOnNonMatchingText(t *testing.T) {
	d := NewDetector(nil)
	d.Observe("FRANCE WINS", at(0))
	d.Observe("FRANCE WINS", at(10))
	if !d.IsComplete(4 * time.Second) {
		t.Fatal("подготовка: детектор должен быть завершен")
	}

	// обычная сводка сбрасывает обнаружение
	d.Observe("Spring 1902: quiet season", at(11))
	if d.Detected() || d.IsComplete(0) {
		t.Error("несовпадающий текст должен сбросить детектор")
	}

	// повторное появление победного текста отсчитывает dwell заново
	d.Observe("FRANCE WINS", at(20))
	if d.IsComplete(4 * time.Second) {
		t.Error("dwell должен отсчитываться заново после сброса")
	}
}

func TestDetectorTextChangeRestartsDwell(t *testing.T) {
	d := NewDetector(nil)
	d.Observe("FRANCE WINS", at(0))
	d.Observe("FRANCE WINS", at(5))

	// другой победный текст — новое обнаружение, dwell заново
	d.Observe("TURKEY WINS", at(6))
	if d.IsComplete(4 * time.Second) {
		t.Error("смена победного текста должна перезапустить отсчет")
	}
	d.Observe("TURKEY WINS", at(11))
	if !d.IsComplete(4 * time.Second) {
		t.Error("после 5с нового текста детектор должен завершиться")
	}
}

func TestDetectorInjectablePhrases(t *testing.T) {
	d := NewDetector([]string{"порядок восстановлен"})
	d.Observe("FRANCE WINS", at(0))
	if d.Detected() {
		t.Error("фразы по умолчанию не должны действовать при кастомном наборе")
	}
	d.Observe("В Европе порядок восстановлен", at(1))
	if !d.Detected() {
		t.Error("кастомная фраза не распознана")
	}
}

func TestDetectorReset(t *testing.T) {
	d := NewDetector(nil)
	d.Observe("ENGLAND WINS", at(0))
	d.Observe("ENGLAND WINS", at(10))
	d.Reset()
	if d.Detected() || d.IsComplete(0) {
		t.Error("Reset должен полностью очистить детектор")
	}
}
