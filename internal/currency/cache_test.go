package currency

import (
	"testing"
	"time"
)

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(30 * time.Second)
	c.now = func() time.Time { return now }

	c.Set("BTCUSDT", 30000)

	if v, ok := c.Get("BTCUSDT"); !ok || v != 30000 {
		t.Fatalf("expected fresh hit, got %v %v", v, ok)
	}

	now = now.Add(31 * time.Second)
	if _, ok := c.Get("BTCUSDT"); ok {
		t.Fatalf("expected expiry after TTL")
	}

	// expired entries are evicted, later Set starts a fresh window
	c.Set("BTCUSDT", 31000)
	if v, ok := c.Get("BTCUSDT"); !ok || v != 31000 {
		t.Fatalf("expected re-set hit, got %v %v", v, ok)
	}
}

func TestNopCache(t *testing.T) {
	var c NopCache
	c.Set("BTCUSDT", 30000)
	if _, ok := c.Get("BTCUSDT"); ok {
		t.Fatalf("NopCache must never hit")
	}
}
