package domain

import "time"

// Виды событий воспроизведения
const (
	EventGameLoaded    = "game_loaded"
	EventVictory       = "victory_confirmed"
	EventExhausted     = "archive_exhausted"
	EventManualControl = "manual_control"
)

// PlaybackEvent — запись журнала событий воспроизведения: что и когда
// показывал театр. Журнал нужен для пост-анализа сессий трансляции.
type PlaybackEvent struct {
	ID        int64          `db:"id" json:"id"`
	GameID    int64          `db:"game_id" json:"game_id"`
	Kind      string         `db:"kind" json:"kind"`
	Details   map[string]any `db:"details" json:"details,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
