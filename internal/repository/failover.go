package repository

import (
	"context"
	"sync/atomic"
	"time"

	"harustay/internal/domain"
	"harustay/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSessionRepository prefers the primary (redis) store and drops to
// the in-memory fallback when it fails, probing the primary again after a
// cooldown.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if !r.isDown.Load() {
		session, err := r.primary.GetSession(ctx, token)
		if err == nil {
			return session, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute.
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		session, err := r.primary.GetSession(ctx, token)
		if err == nil {
			r.isDown.Store(false)
			return session, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetSession(ctx, token)
}

func (r *FailoverSessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	if !r.isDown.Load() {
		err := r.primary.SaveSession(ctx, session)
		if err == nil {
			// Mirror into the fallback so validation survives a later
			// primary outage.
			_ = r.fallback.SaveSession(ctx, session)
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SaveSession(ctx, session)
}

func (r *FailoverSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if !r.isDown.Load() {
		err := r.primary.DeleteSession(ctx, token)
		if err == nil {
			_ = r.fallback.DeleteSession(ctx, token)
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.DeleteSession(ctx, token)
}

func (r *FailoverSessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
