package currency

import (
	"sync"
	"time"
)

// RateCache is an injectable caching strategy for fetched pair prices.
// The converter's contract does not depend on which implementation is
// wired in; the default NopCache reproduces the re-fetch-every-call
// behavior, while TTLCache trades freshness for fewer outbound calls.
type RateCache interface {
	Get(symbol string) (float64, bool)
	Set(symbol string, price float64)
}

// NopCache never stores anything; every conversion re-fetches both legs.
type NopCache struct{}

func (NopCache) Get(string) (float64, bool) { return 0, false }
func (NopCache) Set(string, float64)        {}

// TTLCache keeps each pair price for a fixed duration. Safe for concurrent
// use by parallel requests.
type TTLCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]ttlEntry
}

type ttlEntry struct {
	price   float64
	expires time.Time
}

// NewTTLCache builds a TTLCache with the given time-to-live.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]ttlEntry),
	}
}

func (c *TTLCache) Get(symbol string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[symbol]
	if !ok || c.now().After(e.expires) {
		delete(c.entries, symbol)
		return 0, false
	}
	return e.price, true
}

func (c *TTLCache) Set(symbol string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = ttlEntry{price: price, expires: c.now().Add(c.ttl)}
}
