package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hotelclient/config"
)

// RedisStorage is the shared-storage backend for deployments where the
// client shell runs on more than one node.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(cfg config.RedisConfig) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, entryKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, entryKey(key), value, 0).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = entryKey(key)
	}
	return s.client.Del(ctx, prefixed...).Err()
}

func entryKey(key string) string {
	return fmt.Sprintf("session:%s", key)
}

var _ Storage = (*RedisStorage)(nil)
