package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teacher_portal_backend/internal/profileview"
	"teacher_portal_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

// ViewSessionRepository keeps profile view sessions alive for a sliding TTL.
// Every Save refreshes the expiry. Find returns util.ErrSessionNotFound for
// unknown or expired ids.
type ViewSessionRepository interface {
	Save(ctx context.Context, session *profileview.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*profileview.Session, error)
	Delete(ctx context.Context, id string) error
}

type RedisViewSessionRepository struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedisViewSessionRepository(rdb *redis.Client, prefix string) *RedisViewSessionRepository {
	return &RedisViewSessionRepository{RDB: rdb, Prefix: prefix}
}

func (r *RedisViewSessionRepository) key(id string) string {
	return r.Prefix + id
}

func (r *RedisViewSessionRepository) Save(ctx context.Context, session *profileview.Session, ttl time.Duration) error {
	if err := r.RDB.Set(ctx, r.key(session.ID), session, ttl).Err(); err != nil {
		return fmt.Errorf("save view session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisViewSessionRepository) Find(ctx context.Context, id string) (*profileview.Session, error) {
	data, err := r.RDB.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load view session %s: %w", id, err)
	}

	var session profileview.Session
	if err := session.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decode view session %s: %w", id, err)
	}
	return &session, nil
}

func (r *RedisViewSessionRepository) Delete(ctx context.Context, id string) error {
	n, err := r.RDB.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete view session %s: %w", id, err)
	}
	if n == 0 {
		return util.ErrSessionNotFound
	}
	return nil
}

// MemoryViewSessionRepository is the single-instance backend. Sessions are stored
// encoded so callers never share a mutable session with the store.
type MemoryViewSessionRepository struct {
	cache *cache.Cache
}

func NewMemoryViewSessionRepository(cleanupInterval time.Duration) *MemoryViewSessionRepository {
	return &MemoryViewSessionRepository{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (r *MemoryViewSessionRepository) Save(ctx context.Context, session *profileview.Session, ttl time.Duration) error {
	data, err := session.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode view session %s: %w", session.ID, err)
	}
	r.cache.Set(session.ID, data, ttl)
	return nil
}

func (r *MemoryViewSessionRepository) Find(ctx context.Context, id string) (*profileview.Session, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	var session profileview.Session
	if err := session.UnmarshalBinary(v.([]byte)); err != nil {
		return nil, fmt.Errorf("decode view session %s: %w", id, err)
	}
	return &session, nil
}

// Delete reports ErrSessionNotFound for missing or expired sessions. go-cache has no
// delete that reports presence, so a session that expires right after the lookup still
// counts as deleted; it was live when Delete was called.
func (r *MemoryViewSessionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.cache.Get(id); !ok {
		return util.ErrSessionNotFound
	}
	r.cache.Delete(id)
	return nil
}

func (r *MemoryViewSessionRepository) Count() int {
	return r.cache.ItemCount()
}
