// Package jwttoken validates the bearer tokens minted by the identity
// subsystem. Token issuance lives there; this service only verifies and
// extracts the acting user.
package jwttoken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"custodia/internal/platform/middleware"
)

type claims struct {
	jwt.RegisteredClaims
}

// Service verifies HS256 tokens issued by the identity subsystem.
type Service struct {
	signingKey []byte
	issuer     string
}

func New(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// ValidateToken parses and verifies a token, returning the acting user.
func (s *Service) ValidateToken(tokenString string) (middleware.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return middleware.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return middleware.Claims{}, fmt.Errorf("invalid token")
	}
	if c.Subject == "" {
		return middleware.Claims{}, fmt.Errorf("token has no subject")
	}
	return middleware.Claims{Subject: c.Subject}, nil
}
