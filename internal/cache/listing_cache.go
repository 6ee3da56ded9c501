package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"advertBack/internal/models"

	"github.com/redis/go-redis/v9"
)

// ListingIndexKey holds the unfiltered first page of the public listing.
const ListingIndexKey = "listing:index:v1"

type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// GetIndex returns the cached first page; nil without error is a miss.
func (c *ListingCache) GetIndex(ctx context.Context) (*models.ListingPage, error) {
	data, err := c.client.Get(ctx, ListingIndexKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var page models.ListingPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *ListingCache) SetIndex(ctx context.Context, page *models.ListingPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ListingIndexKey, data, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, ListingIndexKey).Err()
}
