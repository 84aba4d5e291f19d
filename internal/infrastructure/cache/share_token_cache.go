package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
)

const defaultShareKeyPrefix = "cart:share:"

// RedisShareTokenCache caches share token lookups in Redis so the public
// share endpoint does not hit the database on every view. Suitable for
// distributed deployments where multiple instances serve the same links.
type RedisShareTokenCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisShareTokenCache creates a cache backed by an existing Redis client
func NewRedisShareTokenCache(client *redis.Client, ttl time.Duration) *RedisShareTokenCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisShareTokenCache{
		client:    client,
		keyPrefix: defaultShareKeyPrefix,
		ttl:       ttl,
	}
}

// cachedShare is the wire form of a share entry. The domain aggregate is
// not serialized directly to keep unexported event state out of Redis.
type cachedShare struct {
	ID         uuid.UUID `json:"id"`
	ShareToken string    `json:"share_token"`
	CartID     uuid.UUID `json:"cart_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	Permission string    `json:"permission"`
	ExpiresAt  time.Time `json:"expires_at"`
	Active     bool      `json:"active"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Get returns the cached share for a token, or shared.ErrNotFound on a miss
func (c *RedisShareTokenCache) Get(ctx context.Context, token string) (*cart.CartShare, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read share from cache: %w", err)
	}

	var entry cachedShare
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cached share: %w", err)
	}

	share := &cart.CartShare{
		ShareToken: entry.ShareToken,
		CartID:     entry.CartID,
		OwnerID:    entry.OwnerID,
		OwnerEmail: entry.OwnerEmail,
		Permission: cart.SharePermission(entry.Permission),
		ExpiresAt:  entry.ExpiresAt,
		Active:     entry.Active,
	}
	share.ID = entry.ID
	share.Version = entry.Version
	share.CreatedAt = entry.CreatedAt
	share.UpdatedAt = entry.UpdatedAt
	return share, nil
}

// Set stores a share under its token with the configured TTL
func (c *RedisShareTokenCache) Set(ctx context.Context, share *cart.CartShare) error {
	entry := cachedShare{
		ID:         share.ID,
		ShareToken: share.ShareToken,
		CartID:     share.CartID,
		OwnerID:    share.OwnerID,
		OwnerEmail: share.OwnerEmail,
		Permission: string(share.Permission),
		ExpiresAt:  share.ExpiresAt,
		Active:     share.Active,
		Version:    share.Version,
		CreatedAt:  share.CreatedAt,
		UpdatedAt:  share.UpdatedAt,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode share for cache: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+share.ShareToken, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write share to cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry for a token
func (c *RedisShareTokenCache) Invalidate(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, c.keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached share: %w", err)
	}
	return nil
}

// Ensure RedisShareTokenCache implements the application cache port
var _ appcart.ShareCache = (*RedisShareTokenCache)(nil)
