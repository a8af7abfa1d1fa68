package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer         = "dailydiet-api"
	minJWTSecretBytes = 32
	tokenTTL          = 7 * 24 * time.Hour
)

// ErrInvalidToken covers every session token failure mode. Callers get no
// finer detail than this.
var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with an injected secret.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) (*TokenManager, error) {
	raw := strings.TrimSpace(secret)
	if raw == "" {
		return nil, errors.New("JWT secret is required")
	}
	if len(raw) < minJWTSecretBytes {
		return nil, fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretBytes)
	}
	return &TokenManager{secret: []byte(raw)}, nil
}

// Generate issues a new 7-day session token for a user.
func (m *TokenManager) Generate(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("invalid user ID")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate verifies the token signature and registered claims before any
// claim is exposed. Claims are never returned from an unverified token.
func (m *TokenManager) Validate(tokenString string) (*SessionClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != jwtIssuer {
		return nil, ErrInvalidToken
	}

	if claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
