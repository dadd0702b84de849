package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rakapane/dineflow/models"
)

const menuListKey = "menu:all"

// MenuCache is a TTL cache in front of the public menu listing. A nil
// *MenuCache (or nil client) disables caching entirely, so callers can
// use it unconditionally.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	if client == nil {
		return nil
	}
	return &MenuCache{Client: client, TTL: ttl}
}

func (mc *MenuCache) Get(ctx context.Context) ([]models.MenuItem, bool) {
	if mc == nil {
		return nil, false
	}

	raw, err := mc.Client.Get(ctx, menuListKey).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (mc *MenuCache) Set(ctx context.Context, items []models.MenuItem) {
	if mc == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	mc.Client.Set(ctx, menuListKey, raw, mc.TTL)
}

// Invalidate drops the cached listing after any admin write.
func (mc *MenuCache) Invalidate(ctx context.Context) {
	if mc == nil {
		return
	}
	mc.Client.Del(ctx, menuListKey)
}
