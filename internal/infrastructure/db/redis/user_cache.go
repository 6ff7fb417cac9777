package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/api/metrics"
	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

const defaultUserTTL = time.Minute

// UserCache caches user profiles in front of a ports.UserDirectory.
// Key format: user:<id>. Existence is confirmed against the store on every
// call, so a removed account is rejected as soon as it is gone; only the
// profile read is served from Redis. Cache faults degrade to a direct lookup.
type UserCache struct {
	client *redis.Client
	next   ports.UserDirectory
	ttl    time.Duration
	log    zerolog.Logger
}

// NewUserCache wraps next. If ttl <= 0, defaultUserTTL is used.
func NewUserCache(client *redis.Client, next ports.UserDirectory, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	exists, err := c.next.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.Invalidate(ctx, id); err != nil {
			c.log.Warn().Err(err).Str("user_id", id).Msg("dropping stale cached user failed")
		}
		return nil, domain.ErrUserNotFound
	}

	key := c.key(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u domain.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return &u, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cached user")
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("user cache read failed, falling back to store")
	}
	metrics.UserCacheTotal.WithLabelValues("miss").Inc()

	user, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// PasswordHash is tagged json:"-" and never reaches the cache.
	if payload, mErr := json.Marshal(user); mErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("user cache write failed")
		}
	}
	return user, nil
}

// Invalidate drops the cached entry for id.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("user cache invalidate: %w", err)
	}
	return nil
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
