package salon

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
)

// SalonCache stores salon documents between directory reads.
type SalonCache interface {
	Get(ctx context.Context, id string) (*models.Salon, error)
	Set(ctx context.Context, s *models.Salon, ttl time.Duration) error
	Invalidate(ctx context.Context, id string) error
}

var errCacheMiss = errors.New("salon cache miss")

// RedisSalonCache keeps salons as JSON under SalonCachePrefix.
type RedisSalonCache struct {
	client *redis.Client
}

func NewRedisSalonCache(client *redis.Client) *RedisSalonCache {
	return &RedisSalonCache{client: client}
}

func cacheKey(id string) string {
	return utils.SalonCachePrefix + id
}

func (c *RedisSalonCache) Get(ctx context.Context, id string) (*models.Salon, error) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errCacheMiss
		}
		return nil, err
	}
	var s models.Salon
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RedisSalonCache) Set(ctx context.Context, s *models.Salon, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(s.ID), raw, ttl).Err()
}

func (c *RedisSalonCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, cacheKey(id)).Err()
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*models.Salon, error) { return nil, errCacheMiss }
func (noCache) Set(context.Context, *models.Salon, time.Duration) error { return nil }
func (noCache) Invalidate(context.Context, string) error { return nil }
