package render

import "sync"

// Scene — серверное зеркало визуального состояния сцены браузера:
// пара get/set цвета на сущность. Ядро оркестрации не знает о рендеринге
// ничего, кроме этой пары. Каждое применение цвета уходит в callback
// (обычно broadcast в WebSocket hub).
type Scene struct {
	mu      sync.RWMutex
	colors  map[string]Color
	onApply func(entity string, c Color)
}

func NewScene(onApply func(entity string, c Color)) *Scene {
	return &Scene{
		colors:  make(map[string]Color),
		onApply: onApply,
	}
}

// Register добавляет сущность в сцену с базовым цветом.
// Повторная регистрация перезаписывает цвет (новая фаза — новая доска).
func (s *Scene) Register(entity string, base Color) {
	s.mu.Lock()
	s.colors[entity] = base
	s.mu.Unlock()
}

// Remove удаляет сущность из сцены
func (s *Scene) Remove(entity string) {
	s.mu.Lock()
	delete(s.colors, entity)
	s.mu.Unlock()
}

// Clear очищает сцену (смена игры)
func (s *Scene) Clear() {
	s.mu.Lock()
	s.colors = make(map[string]Color)
	s.mu.Unlock()
}

// GetColor возвращает текущий цвет сущности; ok=false, если сущность
// не существует в сцене
func (s *Scene) GetColor(entity string) (Color, bool) {
	s.mu.RLock()
	c, ok := s.colors[entity]
	s.mu.RUnlock()
	return c, ok
}

// SetColor применяет цвет; false, если сущность больше не существует
func (s *Scene) SetColor(entity string, c Color) bool {
	s.mu.Lock()
	if _, ok := s.colors[entity]; !ok {
		s.mu.Unlock()
		return false
	}
	s.colors[entity] = c
	apply := s.onApply
	s.mu.Unlock()

	if apply != nil {
		apply(entity, c)
	}
	return true
}

// Entities возвращает снимок списка сущностей сцены
func (s *Scene) Entities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.colors))
	for e := range s.colors {
		out = append(out, e)
	}
	return out
}
