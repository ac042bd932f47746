package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// архив игр исчерпан — следующей игры нет
	ErrNoMoreGames = errors.New("больше нет игр")
	// запрошенный индекс фазы вне границ текущей игры
	ErrPhaseOutOfRange = errors.New("индекс фазы вне диапазона")
	// ручная операция недопустима во время автовоспроизведения
	ErrPlaybackActive = errors.New("воспроизведение активно")
)

// Состояния воспроизведения
const (
	StateStopped = "stopped"
	StatePlaying = "playing"
	StatePaused  = "paused"
)

// Position — позиция юнита/локации в 3D сцене
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Phase — один ход игры: снимок доски и нарративная сводка.
// После загрузки фаза неизменяема.
// Позиция nil означает "координаты не заданы явно" — их резолвит файл
// карты по коду локации; явный ноль остается нулем.
type Phase struct {
	Name      string               `json:"name"`    // например "S1901M"
	Summary   string               `json:"summary"` // человекочитаемый нарратив
	Board     json.RawMessage      `json:"board"`   // непрозрачный снимок от движка правил
	Positions map[string]*Position `json:"positions,omitempty"`
}

// Game — завершенная (или идущая) партия, загруженная из архива
type Game struct {
	ID           int64             `db:"id" json:"id"`
	Title        string            `db:"title" json:"title"`
	Phases       []Phase           `json:"phases"`
	DisplayNames map[string]string `json:"display_names,omitempty"` // держава -> отображаемое имя
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
}

// GameSummary — краткая запись игры для списков архива
type GameSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	PhaseCount int       `json:"phase_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName возвращает отображаемое имя участника.
// Псевдо-участники (GLOBAL/EUROPE) никогда не проходят через переопределения,
// отсутствующее переопределение деградирует до канонического идентификатора.
func (g *Game) DisplayName(id string) string {
	sp := ParseSpeaker(id)
	if sp.Kind != SpeakerPower {
		return sp.Label()
	}
	if g != nil && g.DisplayNames != nil {
		if name, ok := g.DisplayNames[sp.Power]; ok && name != "" {
			return name
		}
	}
	return sp.Power
}
