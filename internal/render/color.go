package render

import "diplomacy_replay/internal/timing"

// Color — RGB цвет с каналами в [0,1]
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Lerp интерполирует каждый канал отдельно
func (c Color) Lerp(to Color, progress float64) Color {
	return Color{
		R: timing.Lerp(c.R, to.R, progress),
		G: timing.Lerp(c.G, to.G, progress),
		B: timing.Lerp(c.B, to.B, progress),
	}
}

// HighlightColor — цвет пульсации подсветки по умолчанию
var HighlightColor = Color{R: 1, G: 0.85, B: 0.2}
