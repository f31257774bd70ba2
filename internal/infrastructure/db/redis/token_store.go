package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/questionhub/qa-api/internal/core/ports"
)

// TokenStore is the refresh-token allow-list. A token is live while its key
// exists; consuming or revoking it deletes the key.
// Key format: refresh:<jti>  value: user id
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) ports.TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(jti), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes jti, so a token can be exchanged once.
func (s *TokenStore) Consume(ctx context.Context, jti string) (int64, bool, error) {
	val, err := s.client.GetDel(ctx, key(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("consume refresh token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt refresh token entry %q: %w", jti, err)
	}
	return userID, true, nil
}

func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, key(jti)).Err()
}

func key(jti string) string {
	return "refresh:" + jti
}
