package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by SignIn for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken is returned when a session token is malformed, expired, revoked,
// or belongs to a user that no longer exists.
var ErrInvalidToken = errors.New("invalid or expired session")

// Service provides authentication operations.
type Service struct {
	userRepo   UserRepository
	sessions   *Sessions
	revoker    Revoker
	bcryptCost int
	dummyHash  []byte
}

// NewService creates a new auth Service.
func NewService(userRepo UserRepository, sessions *Sessions, revoker Revoker, bcryptCost int) *Service {
	// Compared against on unknown emails so both failure paths cost one bcrypt run.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("vitrine-dummy-password"), bcryptCost)
	return &Service{
		userRepo:   userRepo,
		sessions:   sessions,
		revoker:    revoker,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, name, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Email:        normalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	slog.Info("user registered", "userId", u.ID)
	return u, nil
}

// SignIn checks the credentials and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *Identity, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("finding user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, claims, err := s.sessions.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}

	return token, buildIdentity(u, claims.ID, claims.ExpiresAt.Time), nil
}

// Authenticate resolves a session token to an Identity.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("fetching user for identity: %w", err)
	}

	return buildIdentity(u, claims.ID, claims.ExpiresAt.Time), nil
}

// SignOut revokes the session behind identity until its token would expire.
func (s *Service) SignOut(ctx context.Context, identity *Identity) error {
	ttl := time.Until(identity.ExpiresAt)
	if err := s.revoker.Revoke(ctx, identity.SessionID, ttl); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

func buildIdentity(u *User, sessionID string, expiresAt time.Time) *Identity {
	return &Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
