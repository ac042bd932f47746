package service

import (
	"errors"
	"testing"
	"time"
)

func TestOperatorTokenRoundtrip(t *testing.T) {
	InitJWT()

	token, err := GenerateOperatorToken(time.Hour)
	if err != nil {
		t.Fatalf("GenerateOperatorToken: %v", err)
	}
	if err := ParseOperatorToken(token); err != nil {
		t.Errorf("валидный токен отвергнут: %v", err)
	}
}

func TestParseOperatorTokenRejectsGarbage(t *testing.T) {
	InitJWT()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if err := ParseOperatorToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseOperatorToken(%q): %v, ожидался ErrInvalidToken", tok, err)
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	InitJWT()

	token, err := GenerateOperatorToken(-time.Minute)
	if err != nil {
		t.Fatalf("GenerateOperatorToken: %v", err)
	}
	if err := ParseOperatorToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Error("просроченный токен должен быть отвергнут")
	}
}

func TestExchangeOperatorKey(t *testing.T) {
	InitJWT()

	if _, err := ExchangeOperatorKey("wrong", "secret"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("неверный ключ: %v", err)
	}
	// пустой сконфигурированный ключ никогда не обменивается
	if _, err := ExchangeOperatorKey("", ""); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("пустой ключ: %v", err)
	}

	token, err := ExchangeOperatorKey("secret", "secret")
	if err != nil {
		t.Fatalf("верный ключ отвергнут: %v", err)
	}
	if err := ParseOperatorToken(token); err != nil {
		t.Errorf("выданный токен не прошел проверку: %v", err)
	}
}
