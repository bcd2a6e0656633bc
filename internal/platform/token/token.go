// Package token issues and validates the JWTs behind dashboard sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"syndik/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the actor snapshot the permission checks need on every
// request, so handlers never reload the account.
type Claims struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	CondominiumID string `json:"condominiumId,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens with a shared HMAC key.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
}

func NewManager(signingKey string, ttl time.Duration) *Manager {
	return &Manager{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue creates a signed token for the account.
func (m *Manager) Issue(acct domain.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:          acct.Name,
		Role:          string(acct.Role),
		CondominiumID: acct.CondominiumID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Actor converts the claims back into the actor snapshot services expect.
func (c *Claims) Actor() domain.Actor {
	return domain.Actor{
		ID:            c.Subject,
		Name:          c.Name,
		Role:          domain.Role(c.Role),
		CondominiumID: c.CondominiumID,
	}
}
