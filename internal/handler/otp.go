package handler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore holds short-lived one-time codes for the password reset flow.
type OTPStore interface {
	Set(ctx context.Context, key string, otp string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Set(ctx context.Context, key string, otp string, expiration time.Duration) error {
	return s.client.Set(ctx, key, otp, expiration).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *RedisOTPStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
