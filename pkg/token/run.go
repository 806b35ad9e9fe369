package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "last-queue"

var ErrInvalidToken = errors.New("invalid run token")

// RunClaims - claims токена прохождения. ID - идентификатор прохождения
type RunClaims struct {
	jwt.RegisteredClaims
}

// RunID возвращает идентификатор прохождения из claims
func (c *RunClaims) RunID() string {
	return c.ID
}

// GenerateRunToken подписывает токен прохождения HS256
func GenerateRunToken(runID string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RunClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        runID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

// VerifyRunToken проверяет подпись, срок и издателя токена
func VerifyRunToken(tokenStr string, secretKey []byte) (*RunClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RunClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*RunClaims)
	if !ok || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing run id", ErrInvalidToken)
	}

	return claims, nil
}
