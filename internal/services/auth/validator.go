package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/cornhole/internal/dependencies/clock"
)

// Validator decides offline whether a cached token may still be used
type Validator interface {
	Valid(token string) bool
}

// JWTValidator checks the expiry claim of a JWT without verifying its
// signature. The signing key lives with the record store.
type JWTValidator struct {
	clock  clock.Clock
	parser *jwt.Parser
}

// Ensure JWTValidator implements Validator
var _ Validator = (*JWTValidator)(nil)

// NewJWTValidator creates a validator that reads time from clock
func NewJWTValidator(clock clock.Clock) *JWTValidator {
	return &JWTValidator{
		clock:  clock,
		parser: jwt.NewParser(),
	}
}

// Valid returns true only for a decodable token whose exp lies strictly in
// the future. Anything else, including a missing exp, is invalid.
func (v *JWTValidator) Valid(token string) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := v.parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(v.clock.Now())
}
