package repository

import (
	"context"
	"sync"
	"time"

	"harustay/internal/models"
)

// MemorySessionRepository is the process-local fallback when redis is
// unavailable. Sessions die with the process.
type MemorySessionRepository struct {
	sessions   sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl: ttl,
	}
}

func (r *MemorySessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	r.sessions.Store(session.Token, session)
	return nil
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	val, ok := r.sessions.Load(token)
	if !ok {
		return nil, nil
	}
	session := val.(*models.Session)
	if session.ExpiresAt > 0 && time.Now().Unix() > session.ExpiresAt {
		r.sessions.Delete(token)
		return nil, nil
	}
	return session, nil
}

func (r *MemorySessionRepository) DeleteSession(ctx context.Context, token string) error {
	r.sessions.Delete(token)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}
