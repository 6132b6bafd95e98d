package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultLeeway = 30 * time.Second

// SessionConfig configures session token signing.
type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Leeway time.Duration
}

// Sessions issues and verifies HS256 session tokens. The issuer doubles as
// the audience since the API is the only consumer.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewSessions validates cfg and builds a Sessions.
func NewSessions(cfg SessionConfig) (*Sessions, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "vitrine"
	}
	if cfg.Leeway <= 0 {
		cfg.Leeway = defaultLeeway
	}
	return &Sessions{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		leeway: cfg.Leeway,
		now:    time.Now,
	}, nil
}

// Issue signs a new token for userID.
func (s *Sessions) Issue(userID uuid.UUID) (string, jwt.RegisteredClaims, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   userID.String(),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.issuer},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", jwt.RegisteredClaims{}, fmt.Errorf("signing session: %w", err)
	}
	return token, claims, nil
}

// Verify checks signature, issuer, audience and expiry.
func (s *Sessions) Verify(token string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return claims, err
	}
	if !parsed.Valid {
		return claims, errors.New("invalid token")
	}
	if claims.ID == "" {
		return claims, errors.New("token id missing")
	}
	return claims, nil
}
