package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "airhost"

// TokenDenylist records revoked access tokens until they would have expired anyway.
// Key format: <prefix>:revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
	prefix string
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client, prefix: defaultKeyPrefix}
}

// Revoke marks the token as revoked for ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(jti string) string {
	return d.prefix + ":revoked:" + jti
}
