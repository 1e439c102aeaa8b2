// Package redisrate stores resolved historical rates in Redis, so that they are shared between
// runs and machines.
package redisrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/homereturn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// KeyPrefix prefixes every key written by a Cache.
const KeyPrefix = "homereturn:rate:"

// Cache implements homereturn.RateCache on Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Cache on the Redis server at addr. Entries expire after ttl, never if ttl is 0.
func New(addr string, ttl time.Duration) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

// NewWithClient returns a Cache on an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key returns the Redis key of the rate of pair requested on a date.
func Key(pair homereturn.Pair, on homereturn.Date) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, pair, on)
}

// record is the stored value. The rate is kept unrounded.
type record struct {
	QuotedOn homereturn.Date `json:"quoted_on"`
	Value    decimal.Decimal `json:"rate"`
}

func (c *Cache) Get(ctx context.Context, pair homereturn.Pair, on homereturn.Date) (homereturn.Rate, bool, error) {
	val, err := c.client.Get(ctx, Key(pair, on)).Bytes()
	if errors.Is(err, redis.Nil) {
		return homereturn.Rate{}, false, nil
	}
	if err != nil {
		return homereturn.Rate{}, false, err
	}
	var rec record
	if err := json.Unmarshal(val, &rec); err != nil {
		return homereturn.Rate{}, false, fmt.Errorf("corrupted cache entry %s: %w", Key(pair, on), err)
	}
	return homereturn.Rate{Pair: pair, On: on, QuotedOn: rec.QuotedOn, Value: rec.Value}, true, nil
}

func (c *Cache) Put(ctx context.Context, rate homereturn.Rate) error {
	if rate.Live {
		return errors.New("live rates are not cached")
	}
	val, err := json.Marshal(record{QuotedOn: rate.QuotedOn, Value: rate.Value})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(rate.Pair, rate.On), val, c.ttl).Err()
}

// Ping checks the server is reachable.
func (c *Cache) Ping(ctx context.Context) error { return c.client.Ping(ctx).Err() }

// Close closes the client.
func (c *Cache) Close() error { return c.client.Close() }

var _ homereturn.RateCache = (*Cache)(nil)
