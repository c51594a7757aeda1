package service

import (
	"fmt"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTokenType   = "session"
	sessionTokenIssuer = "stellacofre-bff"
)

// SessionClaims are the claims carried by session tokens.
type SessionClaims struct {
	Sub  string `json:"sub"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the token lifetime.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Sign issues a token for sessionID.
func (t *TokenIssuer) Sign(sessionID string) (string, error) {
	now := t.now()
	claims := SessionClaims{
		Sub:  sessionID,
		Type: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Issuer:    sessionTokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses tokenString and returns the session id it names.
func (t *TokenIssuer) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", &domain.ErrUnauthorized{Message: "Sessão inválida ou expirada"}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", &domain.ErrUnauthorized{Message: "Sessão inválida"}
	}
	if claims.Type != sessionTokenType || claims.Sub == "" {
		return "", &domain.ErrUnauthorized{Message: "Tipo de token inválido"}
	}
	return claims.Sub, nil
}
