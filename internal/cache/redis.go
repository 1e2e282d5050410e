package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kirillkgr/shareit/internal/item"
)

const searchKeyPrefix = "cache:item-search:"

// SearchCache caches item search results in Redis for a short TTL. Stale
// entries are acceptable: searches only ever return available items and the
// TTL keeps the window small.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSearchCache(addr, password string, db int, ttl time.Duration) *SearchCache {
	return &SearchCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// GetSearch returns the cached result for the query, or (nil, nil) on a miss.
func (c *SearchCache) GetSearch(ctx context.Context, text string) ([]*item.Item, error) {
	raw, err := c.client.Get(ctx, searchKey(text)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}

	items, err := decodeSearchResult(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached search result: %w", err)
	}
	return items, nil
}

func (c *SearchCache) SetSearch(ctx context.Context, text string, items []*item.Item) error {
	raw, err := encodeSearchResult(items)
	if err != nil {
		return fmt.Errorf("failed to encode search result: %w", err)
	}
	if err := c.client.Set(ctx, searchKey(text), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

func (c *SearchCache) Close() error {
	return c.client.Close()
}

func searchKey(text string) string {
	return searchKeyPrefix + strings.ToLower(text)
}

// encodeSearchResult normalizes nil to an empty array before marshaling.
// A nil slice would serialize to JSON null, read back as nil and look like a
// miss, so empty search results would never cache.
func encodeSearchResult(items []*item.Item) ([]byte, error) {
	if items == nil {
		items = []*item.Item{}
	}
	return json.Marshal(items)
}

func decodeSearchResult(raw []byte) ([]*item.Item, error) {
	var items []*item.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
