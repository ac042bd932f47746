package domain

import "testing"

func TestParseSpeakerPseudoLabels(t *testing.T) {
	cases := []struct {
		id   string
		kind SpeakerKind
	}{
		{"FRANCE", SpeakerPower},
		{"GLOBAL", SpeakerGlobal},
		{"global", SpeakerGlobal},
		{" Europe ", SpeakerEurope},
		{"Turkey", SpeakerPower},
	}
	for _, c := range cases {
		if got := ParseSpeaker(c.id); got.Kind != c.kind {
			t.Errorf("ParseSpeaker(%q).Kind = %v, ожидалось %v", c.id, got.Kind, c.kind)
		}
	}
}

func TestDisplayNameOverride(t *testing.T) {
	g := &Game{DisplayNames: map[string]string{"FRANCE": "Наполеон III"}}

	if got := g.DisplayName("FRANCE"); got != "Наполеон III" {
		t.Errorf("переопределение не применилось: %q", got)
	}
	// отсутствующее переопределение деградирует до канонического имени
	if got := g.DisplayName("TURKEY"); got != "TURKEY" {
		t.Errorf("fallback: %q", got)
	}
	// псевдо-участники не проходят через переопределения
	if got := g.DisplayName("GLOBAL"); got != "Global" {
		t.Errorf("псевдо-метка: %q", got)
	}
}

func TestDisplayNameEmptyOverride(t *testing.T) {
	g := &Game{DisplayNames: map[string]string{"ITALY": ""}}
	if got := g.DisplayName("ITALY"); got != "ITALY" {
		t.Errorf("пустое переопределение должно игнорироваться: %q", got)
	}
}

func TestDisplayNameNilGame(t *testing.T) {
	var g *Game
	if got := g.DisplayName("RUSSIA"); got != "RUSSIA" {
		t.Errorf("nil игра: %q", got)
	}
}
