package mapdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"diplomacy_replay/internal/domain"
	"diplomacy_replay/internal/logger"
)

// Store держит загруженные файлы координат по вариантам карты и
// резолвит позиции по коду локации
type Store struct {
	mu       sync.RWMutex
	variants map[string]*domain.MapData
}

func NewStore() *Store {
	return &Store{variants: make(map[string]*domain.MapData)}
}

// LoadDir загружает все *.json файлы карт из каталога; имя файла без
// расширения становится именем варианта ("standard.json" -> "standard")
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("чтение каталога карт: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		variant := strings.TrimSuffix(e.Name(), ".json")
		if err := s.LoadFile(variant, filepath.Join(dir, e.Name())); err != nil {
			logger.Warn("mapdata: пропуск файла карты", "file", e.Name(), "error", err)
			continue
		}
		loaded++
	}

	logger.Info("mapdata: карты загружены", "dir", dir, "variants", loaded)
	return nil
}

// LoadFile загружает один файл координат как вариант карты
func (s *Store) LoadFile(variant, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var md domain.MapData
	if err := json.Unmarshal(raw, &md); err != nil {
		return fmt.Errorf("разбор файла карты %s: %w", path, err)
	}
	if len(md.Coordinates) == 0 {
		return fmt.Errorf("файл карты %s не содержит координат", path)
	}

	s.mu.Lock()
	s.variants[variant] = &md
	s.mu.Unlock()
	return nil
}

// Variant возвращает данные варианта карты
func (s *Store) Variant(name string) (*domain.MapData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	md, ok := s.variants[name]
	return md, ok
}

// Resolve возвращает 3D позицию кода локации. Код с суффиксом побережья
// ("STP_NC") при отсутствии точного совпадения деградирует до базовой
// провинции ("STP").
func (s *Store) Resolve(variant, code string) (domain.Position, bool) {
	s.mu.RLock()
	md, ok := s.variants[variant]
	s.mu.RUnlock()
	if !ok {
		return domain.Position{}, false
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if pos, ok := md.Coordinates[code]; ok {
		return pos, true
	}
	if i := strings.IndexByte(code, '_'); i > 0 {
		if pos, ok := md.Coordinates[code[:i]]; ok {
			return pos, true
		}
	}
	return domain.Position{}, false
}

// Province возвращает метаданные провинции (без учета суффикса побережья)
func (s *Store) Province(variant, code string) (domain.Province, bool) {
	s.mu.RLock()
	md, ok := s.variants[variant]
	s.mu.RUnlock()
	if !ok {
		return domain.Province{}, false
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if i := strings.IndexByte(code, '_'); i > 0 {
		code = code[:i]
	}
	p, ok := md.Provinces[code]
	return p, ok
}
