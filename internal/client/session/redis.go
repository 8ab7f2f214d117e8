package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisNamespace is the hash that holds the session when no
// namespace is configured.
const DefaultRedisNamespace = "authkeeper:session"

// RedisStore keeps the session as fields of a single Redis hash.
type RedisStore struct {
	rdb       redis.UniversalClient
	namespace string
}

func NewRedisStore(rdb redis.UniversalClient, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultRedisNamespace
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.HGet(ctx, r.namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.HSet(ctx, r.namespace, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// MultiSet writes all pairs inside MULTI/EXEC.
func (r *RedisStore) MultiSet(ctx context.Context, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	values := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		values = append(values, p.Key, p.Value)
	}
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.namespace, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session batch: %w", err)
	}
	return nil
}

func (r *RedisStore) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.HDel(ctx, r.namespace, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}
