package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisRepository stores slots as plain string keys, namespaced with "llamachat:".
func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb, prefix: "llamachat"}
}

func (r *redisRepository) slotKey(key string) string { return fmt.Sprintf("%s:%s", r.prefix, key) }

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, r.slotKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get slot %q from redis: %w", key, err)
	}
	return val, nil
}

func (r *redisRepository) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.slotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %q in redis: %w", key, err)
	}
	return nil
}

func (r *redisRepository) Remove(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.slotKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %q from redis: %w", key, err)
	}
	return nil
}
