package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token returns a signed JWT expiring at exp
func Token(t testing.TB, exp time.Time) string {
	t.Helper()
	return signed(t, jwt.MapClaims{
		"sub": "test",
		"exp": jwt.NewNumericDate(exp),
	})
}

// TokenWithoutExpiry returns a signed JWT that carries no exp claim
func TokenWithoutExpiry(t testing.TB) string {
	t.Helper()
	return signed(t, jwt.MapClaims{"sub": "test"})
}

func signed(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
