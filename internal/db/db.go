package db

import (
	"context"
	"time"

	"diplomacy_replay/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect открывает пул соединений к Postgres и проверяет его ping'ом.
// Ошибка подключения фатальна — без архива игр сервису нечего воспроизводить.
func Connect(databaseURL string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("db: неверный DATABASE_URL", "error", err)
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("db: не удалось создать пул", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("db: ping не прошел", "error", err)
	}

	logger.Info("db: подключение установлено")
	return pool
}
