package ports

import (
	"context"
	"time"
)

// TokenStore keeps the allow-list of live refresh tokens, keyed by jti.
type TokenStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	// Consume removes jti and returns the user it belonged to. ok is false
	// when jti was unknown, expired or already consumed.
	Consume(ctx context.Context, jti string) (userID int64, ok bool, err error)
	Revoke(ctx context.Context, jti string) error
}
