package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

func VariantsKey(productID int64) string {
	return Key(VariantsKeyPrefix, strconv.FormatInt(productID, 10))
}

const (
	ProductKeyPrefix  = "product"
	VariantsKeyPrefix = "variants"
)
