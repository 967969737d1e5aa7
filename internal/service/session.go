package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"harustay/internal/domain"
	"harustay/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials wrong admin password on login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionService issues and validates admin bearer tokens. The password is
// a single shared bcrypt hash from config; tokens live in the session
// repository with a TTL.
type SessionService struct {
	sessions     domain.SessionRepository
	passwordHash string
	ttl          time.Duration
	logger       *zerolog.Logger
	now          func() time.Time
}

func NewSessionService(sessions domain.SessionRepository, passwordHash string, ttl time.Duration, logger *zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = time.Duration(models.DefaultSessionTTL) * time.Second
	}
	return &SessionService{
		sessions:     sessions,
		passwordHash: passwordHash,
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

// Login checks the password against the configured hash and, on success,
// issues a fresh session token.
func (s *SessionService) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn().Msg("admin login rejected")
		return "", ErrInvalidCredentials
	}

	now := s.now()
	session := &models.Session{
		Token:     uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info().Msg("admin logged in")
	return session.Token, nil
}

// Validate reports whether a token names a live session.
func (s *SessionService) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return false, nil
	}
	if session.ExpiresAt > 0 && s.now().Unix() >= session.ExpiresAt {
		_ = s.sessions.DeleteSession(ctx, token)
		return false, nil
	}
	return true, nil
}

// Logout drops the session; unknown tokens are a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}
