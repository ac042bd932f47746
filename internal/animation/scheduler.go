package animation

import (
	"sync"
	"time"

	"diplomacy_replay/internal/logger"
	"diplomacy_replay/internal/render"
	"diplomacy_replay/internal/timing"
)

// EffectKind — категория транзиентного визуального эффекта
type EffectKind string

const (
	EffectHighlight EffectKind = "highlight"
)

// частота пульсации подсветки по умолчанию (Гц)
const defaultPulseFrequency = 2.0

// Target — минимальная возможность рендера, которой владеет планировщик:
// пара get/set визуального свойства на сущность
type Target interface {
	GetColor(entity string) (render.Color, bool)
	SetColor(entity string, c render.Color) bool
}

type taskKey struct {
	Entity string
	Kind   EffectKind
}

// Task — один активный ограниченный по времени эффект
type Task struct {
	Entity    string
	Kind      EffectKind
	Original  render.Color // записанное исходное значение, восстанавливается всегда
	Target    render.Color
	StartedAt time.Time
	Duration  time.Duration
	Frequency float64
}

// Scheduler управляет ровно текущими активными эффектами на сущностях.
// На пару (сущность, вид эффекта) одновременно не больше одной задачи:
// новая задача сперва восстанавливает исходное значение прерванной —
// никогда промежуточное смешанное.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[taskKey]*Task
	target Target
	clock  timing.Clock
}

func NewScheduler(target Target, clock timing.Clock) *Scheduler {
	if clock == nil {
		clock = timing.SystemClock()
	}
	return &Scheduler{
		tasks:  make(map[taskKey]*Task),
		target: target,
		clock:  clock,
	}
}

// Start запускает эффект на сущности и сообщает, запустился ли он.
// Неизвестная сущность — warning и no-op, исключение наружу не уходит.
func (s *Scheduler) Start(entity string, kind EffectKind, target render.Color, duration time.Duration) bool {
	// нулевая длительность дала бы NaN-прогресс на первом же тике
	if duration <= 0 {
		logger.Warn("animation: non-positive duration, ignoring",
			"entity", entity, "kind", string(kind), "duration", duration)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := taskKey{Entity: entity, Kind: kind}

	// отменяем конфликтующую задачу: восстанавливаем её исходное значение
	// до старта новой, чтобы не копился визуальный дрейф
	if prev, ok := s.tasks[key]; ok {
		s.target.SetColor(prev.Entity, prev.Original)
		delete(s.tasks, key)
	}

	original, ok := s.target.GetColor(entity)
	if !ok {
		logger.Warn("animation: unknown entity, ignoring", "entity", entity, "kind", string(kind))
		return false
	}

	s.tasks[key] = &Task{
		Entity:    entity,
		Kind:      kind,
		Original:  original,
		Target:    target,
		StartedAt: s.clock.Now(),
		Duration:  duration,
		Frequency: defaultPulseFrequency,
	}
	return true
}

// Tick продвигает все активные эффекты к моменту now.
// Прогресс считается от абсолютного прошедшего времени, не от числа кадров,
// поэтому пропущенные или запоздавшие кадры не рассинхронизируют длительность.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, task := range s.tasks {
		elapsed := now.Sub(task.StartedAt)
		progress := elapsed.Seconds() / task.Duration.Seconds()

		if progress >= 1 {
			// естественное завершение: восстановить исходное и удалить
			s.target.SetColor(task.Entity, task.Original)
			delete(s.tasks, key)
			continue
		}

		// пульс: интерполяция к целевому цвету, модулированная осцилляцией
		pulse := timing.Oscillate(task.Frequency, elapsed.Seconds())
		value := task.Original.Lerp(task.Target, pulse)

		if !s.target.SetColor(task.Entity, value) {
			// сущность исчезла из сцены — задача молча выбрасывается
			delete(s.tasks, key)
		}
	}
}

// Active возвращает число активных задач
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CancelAll восстанавливает исходные значения всех задач и очищает планировщик
// (используется при смене игры)
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, task := range s.tasks {
		s.target.SetColor(task.Entity, task.Original)
		delete(s.tasks, key)
	}
}
