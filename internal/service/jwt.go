package service

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"diplomacy_replay/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

var (
	ErrInvalidToken = errors.New("невалидный токен")
	ErrInvalidKey   = errors.New("неверный операторский ключ")
)

// InitJWT инициализирует секрет подписи токенов. Без JWT_SECRET генерируется
// случайный секрет — токены переживут только текущий процесс.
func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Fatal("jwt: не удалось сгенерировать секрет", "error", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("jwt: JWT_SECRET не задан, используется эфемерный секрет")
	}
	jwtSecret = []byte(secret)
}

// ExchangeOperatorKey меняет общий операторский ключ на JWT.
// Сравнение за константное время.
func ExchangeOperatorKey(key, operatorKey string) (string, error) {
	if operatorKey == "" || !hmac.Equal([]byte(key), []byte(operatorKey)) {
		return "", ErrInvalidKey
	}
	return GenerateOperatorToken(24 * time.Hour)
}

// GenerateOperatorToken выпускает операторский токен с ограниченным сроком
func GenerateOperatorToken(ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": "operator",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseOperatorToken проверяет подпись, срок и роль токена
func ParseOperatorToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != "operator" {
		return ErrInvalidToken
	}
	return nil
}
