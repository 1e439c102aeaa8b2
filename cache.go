package homereturn

import (
	"context"
	"sync"
)

// RateCache memoizes resolved historical rates by pair and requested date.
//
// A cache never changes which rate is selected, it only saves quote source requests.
type RateCache interface {
	Get(ctx context.Context, pair Pair, on Date) (Rate, bool, error)
	Put(ctx context.Context, rate Rate) error
}

type rateKey struct {
	pair Pair
	on   Date
}

// MemoryCache is a process-local RateCache. Its zero value is ready to use.
type MemoryCache struct {
	mu    sync.Mutex
	rates map[rateKey]Rate
}

func (c *MemoryCache) Get(_ context.Context, pair Pair, on Date) (Rate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rates[rateKey{pair, on}]
	return r, ok, nil
}

func (c *MemoryCache) Put(_ context.Context, rate Rate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rates == nil {
		c.rates = make(map[rateKey]Rate)
	}
	c.rates[rateKey{rate.Pair, rate.On}] = rate
	return nil
}

// Len returns the number of cached rates.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rates)
}
