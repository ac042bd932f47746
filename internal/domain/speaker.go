package domain

import "strings"

// SpeakerKind — вид автора сводки
type SpeakerKind int

const (
	// обычная держава-участник
	SpeakerPower SpeakerKind = iota
	// глобальный рассказчик (не участник)
	SpeakerGlobal
	// сводка по всей карте (не участник)
	SpeakerEurope
)

// Speaker — помеченный вариант вместо сравнения строк по месту:
// участник либо псевдо-метка
type Speaker struct {
	Kind  SpeakerKind
	Power string // заполнен только для SpeakerPower
}

// ParseSpeaker классифицирует идентификатор автора сводки
func ParseSpeaker(id string) Speaker {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "GLOBAL":
		return Speaker{Kind: SpeakerGlobal}
	case "EUROPE":
		return Speaker{Kind: SpeakerEurope}
	default:
		return Speaker{Kind: SpeakerPower, Power: strings.TrimSpace(id)}
	}
}

// Label возвращает отображаемую метку для псевдо-участников
func (s Speaker) Label() string {
	switch s.Kind {
	case SpeakerGlobal:
		return "Global"
	case SpeakerEurope:
		return "Europe"
	default:
		return s.Power
	}
}
