package playback

import (
	"strings"
	"sync"
	"time"
)

// DefaultVictoryPhrases — маркеры конца игры по умолчанию.
// Набор инжектируется конфигурацией: разбор свободного текста хрупок,
// и фразы не должны быть зашиты в код.
var DefaultVictoryPhrases = []string{
	"wins",
	"victory",
	"solo victory",
	"has won",
	"draw agreed",
	"game over",
}

// Detector наблюдает за потоком текстовых сводок и измеряет, как долго
// текст победы остается на экране (dwell).
type Detector struct {
	mu       sync.Mutex
	phrases  []string
	detected bool
	firstAt  time.Time
	lastText string
	dwell    time.Duration
}

func NewDetector(phrases []string) *Detector {
	if len(phrases) == 0 {
		phrases = DefaultVictoryPhrases
	}
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Detector{phrases: lowered}
}

func (d *Detector) matches(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Observe скармливает детектору видимый текст сводки.
// Первое совпадение фиксирует firstAt; пока тот же победный текст остается
// на экране, dwell накапливается. Несовпадающий текст сбрасывает детектор.
// Возвращает текущую накопленную длительность dwell.
func (d *Detector) Observe(text string, now time.Time) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.matches(text) {
		d.detected = false
		d.dwell = 0
		d.lastText = text
		return 0
	}

	if !d.detected || text != d.lastText {
		// первое обнаружение либо другой победный текст — отсчет заново
		d.detected = true
		d.firstAt = now
		d.lastText = text
		d.dwell = 0
		return 0
	}

	d.dwell = now.Sub(d.firstAt)
	return d.dwell
}

// IsComplete — true, когда dwell превысил порог
func (d *Detector) IsComplete(minDwell time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detected && d.dwell >= minDwell
}

// Detected — true, если победный текст сейчас на экране
func (d *Detector) Detected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detected
}

// Reset очищает детектор (загрузка новой игры)
func (d *Detector) Reset() {
	d.mu.Lock()
	d.detected = false
	d.dwell = 0
	d.lastText = ""
	d.firstAt = time.Time{}
	d.mu.Unlock()
}
