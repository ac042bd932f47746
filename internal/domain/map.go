package domain

// Province — метаданные провинции из файла карты
type Province struct {
	IsSupplyCenter bool     `json:"isSupplyCenter"`
	Type           string   `json:"type"` // land / sea / coast
	Coasts         []string `json:"coasts,omitempty"`
}

// MapData — декларативный файл координат для варианта карты.
// Коды локаций могут иметь суффикс побережья, например "STP_NC".
type MapData struct {
	MapWidth    float64             `json:"mapWidth"`
	MapHeight   float64             `json:"mapHeight"`
	Coordinates map[string]Position `json:"coordinates"`
	Provinces   map[string]Province `json:"provinces"`
}
