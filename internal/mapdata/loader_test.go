package mapdata

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleMap = `{
	"mapWidth": 1200,
	"mapHeight": 900,
	"coordinates": {
		"PAR": {"x": 10, "y": 0, "z": 20},
		"STP": {"x": 50, "y": 0, "z": -30},
		"STP_SC": {"x": 48, "y": 0, "z": -25}
	},
	"provinces": {
		"PAR": {"isSupplyCenter": true, "type": "land"},
		"STP": {"isSupplyCenter": true, "type": "coast", "coasts": ["NC", "SC"]}
	}
}`

func writeSampleMap(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleMap), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirAndResolve(t *testing.T) {
	dir := t.TempDir()
	writeSampleMap(t, dir, "standard.json")

	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	md, ok := s.Variant("standard")
	if !ok {
		t.Fatal("вариант standard не загружен")
	}
	if md.MapWidth != 1200 || md.MapHeight != 900 {
		t.Errorf("размеры карты: %v x %v", md.MapWidth, md.MapHeight)
	}

	pos, ok := s.Resolve("standard", "PAR")
	if !ok || pos.X != 10 || pos.Z != 20 {
		t.Errorf("Resolve(PAR) = %v, ok=%v", pos, ok)
	}
}

func TestResolveCoastSuffix(t *testing.T) {
	dir := t.TempDir()
	writeSampleMap(t, dir, "standard.json")
	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatal(err)
	}

	// точное совпадение с суффиксом побережья
	pos, ok := s.Resolve("standard", "STP_SC")
	if !ok || pos.X != 48 {
		t.Errorf("Resolve(STP_SC) = %v, ok=%v", pos, ok)
	}

	// суффикс без точной координаты деградирует до базовой провинции
	pos, ok = s.Resolve("standard", "STP_NC")
	if !ok || pos.X != 50 {
		t.Errorf("Resolve(STP_NC) = %v, ok=%v — ожидался fallback на STP", pos, ok)
	}

	// регистр не важен
	if _, ok := s.Resolve("standard", "par"); !ok {
		t.Error("Resolve должен быть регистронезависимым")
	}

	if _, ok := s.Resolve("standard", "XXX"); ok {
		t.Error("неизвестная локация не должна резолвиться")
	}
}

func TestProvinceMetadata(t *testing.T) {
	dir := t.TempDir()
	writeSampleMap(t, dir, "standard.json")
	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatal(err)
	}

	p, ok := s.Province("standard", "STP_NC")
	if !ok {
		t.Fatal("метаданные STP не найдены по коду с суффиксом")
	}
	if !p.IsSupplyCenter || p.Type != "coast" || len(p.Coasts) != 2 {
		t.Errorf("метаданные STP: %+v", p)
	}
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"coordinates": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.LoadFile("bad", path); err == nil {
		t.Error("карта без координат должна быть отвергнута")
	}
}
