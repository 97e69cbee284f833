package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenyList records revoked token ids until the tokens would have expired anyway.
type DenyList interface {
	Revoke(ctx context.Context, claims *Claims) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisDenyList struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisDenyList(client *redis.Client) *RedisDenyList {
	return &RedisDenyList{
		client: client,
		prefix: "session:revoked:",
		now:    time.Now,
	}
}

func (d *RedisDenyList) Revoke(ctx context.Context, claims *Claims) error {
	if d.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(d.now())
	}
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}

	if err := d.client.Set(ctx, d.prefix+claims.ID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (d *RedisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if d.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if tokenID == "" {
		return false, nil
	}

	err := d.client.Get(ctx, d.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return true, nil
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
