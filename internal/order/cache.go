package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

// setIfNewer writes an order hash unless the cached copy already carries the
// same or a later version. A reader that loaded an order before a status
// change therefore cannot put the old copy back.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'version', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// CachedRepo keeps single orders in redis. Lists always hit the wrapped
// repository; status writes replace the cached copy with the new version.
type CachedRepo struct {
	next    Repository
	client  *redis.Client
	baseTTL time.Duration
	sfg     singleflight.Group
}

func NewCachedRepo(next Repository, client *redis.Client, ttl time.Duration) *CachedRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedRepo{next: next, client: client, baseTTL: ttl}
}

func (c *CachedRepo) Create(ctx context.Context, o *Order) error {
	return c.next.Create(ctx, o)
}

func (c *CachedRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	v, err, _ := c.sfg.Do(id, func() (any, error) {
		o, err := c.get(ctx, id)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("order cache read failed", "order_id", id, "err", err)
		}

		o, err = c.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := c.set(context.WithoutCancel(ctx), o); err != nil {
			slog.Warn("order cache write failed", "order_id", id, "err", err)
		}
		return o, nil
	})
	if err != nil {
		return nil, err
	}
	// callers may mutate the result; hand each one its own copy
	cp := *v.(*Order)
	cp.Items = append([]Item(nil), cp.Items...)
	return &cp, nil
}

func (c *CachedRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	return c.next.List(ctx, f)
}

func (c *CachedRepo) UpdateStatus(ctx context.Context, id string, version int, status Status, reason string) (*Order, error) {
	o, err := c.next.UpdateStatus(ctx, id, version, status, reason)
	bg := context.WithoutCancel(ctx)
	switch {
	case err == nil:
		c.refresh(bg, o)
	case errors.Is(err, ErrConflict):
		// another writer got there first; cache what it stored
		fresh, errGet := c.next.GetByID(bg, id)
		if errGet != nil {
			c.invalidate(bg, id)
			break
		}
		c.refresh(bg, fresh)
	default:
		c.invalidate(bg, id)
	}
	return o, err
}

func (c *CachedRepo) refresh(ctx context.Context, o *Order) {
	if err := c.set(ctx, o); err != nil {
		slog.Warn("order cache write failed", "order_id", o.ID, "err", err)
		c.invalidate(ctx, o.ID)
	}
}

func (c *CachedRepo) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		slog.Warn("order cache invalidate failed", "order_id", id, "err", err)
	}
}

func (c *CachedRepo) get(ctx context.Context, id string) (*Order, error) {
	data, err := c.client.HGet(ctx, cacheKey(id), "data").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return &o, nil
}

func (c *CachedRepo) set(ctx context.Context, o *Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}
	jitter := time.Duration(rand.Int63n(int64(c.baseTTL/5) + 1))
	ttl := c.baseTTL + jitter
	if err := setIfNewer.Run(ctx, c.client, []string{cacheKey(o.ID)}, data, o.Version, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("order:%s", id)
}
