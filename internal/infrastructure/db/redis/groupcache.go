package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/ports"
)

const defaultGroupTTL = 5 * time.Minute

// GroupCache is a read-through cache in front of a GroupRepository. Group
// membership drives every Group-capability check, so repeated checks for
// the same group should not hit Mongo each time. Entries expire after ttl;
// membership mutations become visible within that window.
// Key format: group:<name>
type GroupCache struct {
	client *redis.Client
	inner  ports.GroupRepository
	ttl    time.Duration
}

// NewGroupCache wraps inner with a Redis-backed cache. If ttl <= 0,
// defaultGroupTTL is used.
func NewGroupCache(client *redis.Client, inner ports.GroupRepository, ttl time.Duration) *GroupCache {
	if ttl <= 0 {
		ttl = defaultGroupTTL
	}
	return &GroupCache{client: client, inner: inner, ttl: ttl}
}

func (c *GroupCache) FindByName(ctx context.Context, name string) (*domain.Group, error) {
	raw, err := c.client.Get(ctx, c.key(name)).Bytes()
	if err == nil {
		var group domain.Group
		if err := json.Unmarshal(raw, &group); err == nil {
			return &group, nil
		}
		// Undecodable entry: fall through and refresh it.
	} else if err != redis.Nil {
		return nil, fmt.Errorf("group cache get: %w", err)
	}

	group, err := c.inner.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(group); err == nil {
		if err := c.client.Set(ctx, c.key(name), raw, c.ttl).Err(); err != nil {
			return nil, fmt.Errorf("group cache set: %w", err)
		}
	}
	return group, nil
}

func (c *GroupCache) key(name string) string {
	return fmt.Sprintf("group:%s", name)
}
