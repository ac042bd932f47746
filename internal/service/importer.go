package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"diplomacy_replay/internal/domain"
	"diplomacy_replay/internal/logger"
	"diplomacy_replay/internal/repository"
)

// Importer заливает игровые JSON файлы с диска в архив при старте,
// чтобы движку всегда было что воспроизводить
type Importer struct {
	archive *repository.ArchiveRepository
}

func NewImporter(archive *repository.ArchiveRepository) *Importer {
	return &Importer{archive: archive}
}

// ImportDir сканирует каталог на *.json игры и вставляет отсутствующие
// в архив (дедупликация по названию). Возвращает число импортированных.
func (i *Importer) ImportDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("чтение каталога игр: %w", err)
	}

	imported := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		game, err := i.parseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("importer: пропуск файла", "file", e.Name(), "error", err)
			continue
		}

		exists, err := i.archive.ExistsByTitle(ctx, game.Title)
		if err != nil {
			return imported, err
		}
		if exists {
			continue
		}

		if err := i.archive.Insert(ctx, game); err != nil {
			logger.Error("importer: вставка не удалась", "title", game.Title, "error", err)
			continue
		}
		logger.Info("importer: игра импортирована", "id", game.ID, "title", game.Title, "phases", len(game.Phases))
		imported++
	}

	return imported, nil
}

func (i *Importer) parseFile(path string) (*domain.Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var game domain.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}
	if game.Title == "" {
		// название по имени файла, если в документе его нет
		game.Title = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if len(game.Phases) == 0 {
		return nil, fmt.Errorf("%s: игра без фаз", path)
	}
	return &game, nil
}
