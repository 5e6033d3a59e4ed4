package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenKey is where the session token lives.
const TokenKey = "skillnet:session:token"

// TokenStore shares the session token between CLI invocations and hosts.
type TokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewTokenStore wraps client. A ttl of zero keeps the token until Clear.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, key: TokenKey, ttl: ttl}
}

// Load returns "" when no token is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis load token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis clear token: %w", err)
	}
	return nil
}
