package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

// SettingCacheStore caches the current tax and payment rates between writes.
type SettingCacheStore interface {
	Get(ctx context.Context) (*domain.Setting, bool, error)
	Set(ctx context.Context, setting *domain.Setting, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type NoopSettingCacheStore struct{}

func NewNoopSettingCacheStore() *NoopSettingCacheStore { return &NoopSettingCacheStore{} }

func (s *NoopSettingCacheStore) Get(context.Context) (*domain.Setting, bool, error) {
	return nil, false, nil
}

func (s *NoopSettingCacheStore) Set(context.Context, *domain.Setting, time.Duration) error {
	return nil
}

func (s *NoopSettingCacheStore) Invalidate(context.Context) error { return nil }

// RedisSettingCacheStore keeps the current setting as a JSON value under a
// single key.
type RedisSettingCacheStore struct {
	client redis.UniversalClient
	key    string
}

func NewRedisSettingCacheStore(client redis.UniversalClient, prefix string) *RedisSettingCacheStore {
	if prefix == "" {
		prefix = "setting_cache"
	}
	return &RedisSettingCacheStore{client: client, key: prefix + ":current"}
}

func (s *RedisSettingCacheStore) Get(ctx context.Context) (*domain.Setting, bool, error) {
	if s.client == nil {
		return nil, false, nil
	}
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var setting domain.Setting
	if err := json.Unmarshal(payload, &setting); err != nil {
		// A corrupt entry behaves like a miss and is overwritten on the
		// next Set.
		return nil, false, nil
	}
	return &setting, true, nil
}

func (s *RedisSettingCacheStore) Set(ctx context.Context, setting *domain.Setting, ttl time.Duration) error {
	if s.client == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(setting)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, payload, ttl).Err()
}

func (s *RedisSettingCacheStore) Invalidate(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.key).Err()
}
