package repository

import (
	"context"
	"encoding/json"

	"diplomacy_replay/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// журнал событий воспроизведения
type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create пишет событие в журнал
func (r *EventRepository) Create(ctx context.Context, ev *domain.PlaybackEvent) error {
	details, err := json.Marshal(ev.Details)
	if err != nil {
		details = []byte("{}")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO playback_events (game_id, kind, details)
		VALUES ($1, $2, $3)
	`, ev.GameID, ev.Kind, details)
	return err
}

// Recent возвращает последние события журнала
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]*domain.PlaybackEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, game_id, kind, details, created_at
		FROM playback_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.PlaybackEvent
	for rows.Next() {
		var ev domain.PlaybackEvent
		var details []byte
		if err := rows.Scan(&ev.ID, &ev.GameID, &ev.Kind, &details, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			_ = json.Unmarshal(details, &ev.Details)
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}

// EnsureSchema создает таблицу журнала, если её еще нет
func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS playback_events (
			id         BIGSERIAL PRIMARY KEY,
			game_id    BIGINT NOT NULL,
			kind       TEXT NOT NULL,
			details    JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}
