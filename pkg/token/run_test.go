package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func TestRunTokenRoundTrip(t *testing.T) {
	tok, err := GenerateRunToken("run-1", secret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := VerifyRunToken(tok, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.RunID() != "run-1" {
		t.Fatalf("expected run-1, got %s", claims.RunID())
	}
}

func TestVerifyRunTokenRejects(t *testing.T) {
	expired, err := GenerateRunToken("run-1", secret, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	good, _ := GenerateRunToken("run-1", secret, time.Hour)
	noID, _ := GenerateRunToken("", secret, time.Hour)
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "run-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)

	cases := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"expired", expired, secret},
		{"wrong secret", good, []byte("other")},
		{"garbage", "not.a.token", secret},
		{"missing run id", noID, secret},
		{"foreign issuer", foreign, secret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VerifyRunToken(tc.token, tc.secret); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
