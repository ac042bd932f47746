package timing

import (
	"math"
	"time"
)

// Чистые функции время->значение, используемые анимациями.
// Без общего состояния, безопасны из любой горутины на любой частоте.

// Oscillate возвращает периодическое значение в [0,1] с периодом 1/frequency
func Oscillate(frequency, elapsedSeconds float64) float64 {
	return (math.Sin(elapsedSeconds*frequency*2*math.Pi) + 1) / 2
}

// SineWave — синусоида с амплитудой и смещением,
// диапазон [offset-amplitude, offset+amplitude]
func SineWave(frequency, elapsedSeconds, amplitude, offset float64) float64 {
	return math.Sin(elapsedSeconds*frequency*2*math.Pi)*amplitude + offset
}

// Clamp ограничивает value диапазоном [min,max]; требует min <= max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp — линейная интерполяция; progress вне [0,1] молча зажимается,
// экстраполяции нет
func Lerp(start, end, progress float64) float64 {
	return start + (end-start)*Clamp(progress, 0, 1)
}

// Clock — монотонный источник времени, подменяемый в тестах
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock возвращает часы на основе time.Now
func SystemClock() Clock { return systemClock{} }

// ManualClock — детерминированные часы для тестов
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance сдвигает часы вперед
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
