package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/akurlov/shortly/internal/store"
)

type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(addr string, password string, db int) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) Load() ([]byte, error) {
	data, err := s.client.Get(context.Background(), store.DocumentKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStorage) Save(data []byte) error {
	// The document never expires on its own, record expiry is computed
	// at read time from each record's expires_at.
	return s.client.Set(context.Background(), store.DocumentKey, data, 0).Err()
}

func (s *RedisStorage) Ping() error {
	return s.client.Ping(context.Background()).Err()
}

func (s *RedisStorage) Close() {
	_ = s.client.Close()
}
