package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tuneup/accounts-api/internal/core/domain"
	"github.com/tuneup/accounts-api/internal/core/ports"
)

const defaultUserTTL = 5 * time.Minute

// UserCache stores user records as JSON blobs keyed by identifier.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached record for id, or nil on a miss.
func (c *UserCache) Get(ctx context.Context, id int) (*domain.User, error) {
	b, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal(b, &user); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the record with the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), b, c.ttl).Err()
}

func (c *UserCache) key(id int) string {
	return fmt.Sprintf("user:%d", id)
}

// CachedUserRepository decorates a UserRepository with read-through caching
// on the identifier lookup. Records never change after creation, so entries
// are only ever filled, never invalidated. Cache faults degrade to the store
// and are logged, never surfaced.
type CachedUserRepository struct {
	inner ports.UserRepository
	cache *UserCache
	log   zerolog.Logger
}

func NewCachedUserRepository(inner ports.UserRepository, cache *UserCache, log zerolog.Logger) *CachedUserRepository {
	return &CachedUserRepository{inner: inner, cache: cache, log: log}
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.inner.FindByEmail(ctx, email)
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	if cached, err := r.cache.Get(ctx, id); err != nil {
		r.log.Warn().Err(err).Int("user_id", id).Msg("cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	user, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, user); err != nil {
		r.log.Warn().Err(err).Int("user_id", id).Msg("cache fill failed")
	}
	return user, nil
}

func (r *CachedUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved, err := r.inner.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, saved); err != nil {
		r.log.Warn().Err(err).Int("user_id", saved.ID).Msg("cache fill failed after save")
	}
	return saved, nil
}
