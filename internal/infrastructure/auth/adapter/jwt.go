package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"skillswap/internal/infrastructure/auth/port"
)

// JWTVerifier validates HS256 access tokens carrying a "userId" claim, the
// shape the auth service issues.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier constructs a verifier with the given signing secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// NewJWTVerifierFromEnv constructs a verifier using the JWT_ACCESS_SECRET
// environment variable.
func NewJWTVerifierFromEnv() (*JWTVerifier, error) {
	secret := os.Getenv("JWT_ACCESS_SECRET")
	if secret == "" {
		return nil, errors.New("auth: JWT_ACCESS_SECRET environment variable is not set")
	}
	return NewJWTVerifier([]byte(secret)), nil
}

// Ensure interface compliance at compile time
var _ port.TokenVerifier = (*JWTVerifier)(nil)

type accessClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Verify parses and validates token, returning the user identity it binds.
// Every failure collapses into port.ErrInvalidToken.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", port.ErrInvalidToken
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", port.ErrInvalidToken
	}
	return claims.UserID, nil
}
