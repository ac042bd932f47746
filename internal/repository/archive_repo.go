package repository

import (
	"context"
	"encoding/json"
	"errors"

	"diplomacy_replay/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveRepository — архив завершенных игр в Postgres.
// Фазы и переопределения имен хранятся как JSONB.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// NextGame возвращает первую игру с id больше afterID;
// domain.ErrNoMoreGames, когда архив исчерпан
func (r *ArchiveRepository) NextGame(ctx context.Context, afterID int64) (*domain.Game, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, phases, display_names, created_at
		FROM games
		WHERE id > $1
		ORDER BY id ASC
		LIMIT 1
	`, afterID)

	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoMoreGames
		}
		return nil, err
	}
	return g, nil
}

// GetByID возвращает игру по идентификатору (nil, если не найдена)
func (r *ArchiveRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, phases, display_names, created_at
		FROM games
		WHERE id = $1
	`, id)

	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

// Insert сохраняет игру в архив и заполняет ID/CreatedAt
func (r *ArchiveRepository) Insert(ctx context.Context, g *domain.Game) error {
	phases, err := json.Marshal(g.Phases)
	if err != nil {
		return err
	}
	names, err := json.Marshal(g.DisplayNames)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO games (title, phases, display_names)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, g.Title, phases, names).Scan(&g.ID, &g.CreatedAt)
}

// ExistsByTitle проверяет, есть ли уже игра с таким названием
// (дедупликация при импорте)
func (r *ArchiveRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM games WHERE title = $1)
	`, title).Scan(&exists)
	return exists, err
}

// Count возвращает число игр в архиве
func (r *ArchiveRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}

// ListSummaries возвращает краткий список игр архива (без фаз)
func (r *ArchiveRepository) ListSummaries(ctx context.Context, limit int) ([]domain.GameSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, jsonb_array_length(phases), created_at
		FROM games
		ORDER BY id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GameSummary
	for rows.Next() {
		var s domain.GameSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.PhaseCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// EnsureSchema создает таблицу архива, если её еще нет
func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id            BIGSERIAL PRIMARY KEY,
			title         TEXT NOT NULL UNIQUE,
			phases        JSONB NOT NULL,
			display_names JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var g domain.Game
	var phases, names []byte

	if err := row.Scan(&g.ID, &g.Title, &phases, &names, &g.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(phases, &g.Phases); err != nil {
		return nil, err
	}
	if len(names) > 0 {
		// битые переопределения имен не фатальны — деградируем до канонических
		if err := json.Unmarshal(names, &g.DisplayNames); err != nil {
			g.DisplayNames = nil
		}
	}
	return &g, nil
}
