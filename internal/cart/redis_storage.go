package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/strixcommerce/storefront-platform/internal/models"
)

const cartKeyPrefix = "cart:"

// RedisStorage keeps one JSON blob per session under a well-known key.
// No versioning: concurrent writers are last-write-wins.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) (*models.Cart, error) {

	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	var cart models.Cart

	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupt blob is treated as no cart; the key is dropped so the
		// next save starts clean.
		if delErr := r.client.Del(ctx, cartKey(sessionID)).Err(); delErr != nil {
			return nil, fmt.Errorf("failed to drop corrupt cart for session %s: %w", sessionID, delErr)
		}

		return nil, nil
	}

	return &cart, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, cart *models.Cart) error {

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (r *RedisStorage) Clear(ctx context.Context, sessionID string) error {

	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}
